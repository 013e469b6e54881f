package ai

import (
	"errors"
	"slices"
	"strings"
)

// ErrEmptyTerm is returned when a lookup is asked for a blank term.
var ErrEmptyTerm = errors.New("term is empty")

// PartsOfSpeech lists the labels a Sense may carry.
var PartsOfSpeech = []string{
	"adjective",
	"adverb",
	"conjunction",
	"idiom",
	"interjection",
	"noun",
	"other",
	"phrase",
	"preposition",
	"pronoun",
	"verb",
}

// NormalizePartOfSpeech lowercases pos and maps anything unknown to "other".
func NormalizePartOfSpeech(pos string) string {
	pos = strings.ToLower(strings.TrimSpace(pos))
	if slices.Contains(PartsOfSpeech, pos) {
		return pos
	}
	return "other"
}

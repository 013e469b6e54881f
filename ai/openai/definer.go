package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/lexicon/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxParseAttempts = 3

// Definer implements ai.Definer using OpenAI-compatible chat APIs.
type Definer struct {
	client    llms.Model
	maxSenses int
	logger    *slog.Logger
}

// sense is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type sense struct {
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
	Example      string `json:"example"`
}

// lookup is the wrapper structure for the LLM's JSON response.
type lookup struct {
	Senses []sense `json:"senses"`
}

// newDefiner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newDefiner(config *ai.Config) (*Definer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Definer{
		client:    client,
		maxSenses: config.MaxSenses,
		logger:    slog.Default().With("component", "openai-definer"),
	}, nil
}

// NewDefiner creates a new definer using the provided configuration.
//
// Returns ai.Definer interface to enforce abstraction.
func NewDefiner(config *ai.Config) (ai.Definer, error) {
	return newDefiner(config)
}

// Define asks the model for the senses of term.
// Malformed JSON is repaired where possible and the request retried up to
// three times before giving up.
func (d *Definer) Define(ctx context.Context, term string) ([]ai.Sense, error) {
	term = cleanTerm(term)
	if term == "" {
		return nil, ai.ErrEmptyTerm
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt(d.maxSenses))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(term)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := d.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			d.logger.Error("failed to generate content", "term", term, "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			d.logger.Debug("no choices returned from model", "term", term)
			return []ai.Sense{}, nil
		}

		senses, err := parseSenses(response.Choices[0].Content, d.maxSenses)
		if err != nil {
			lastErr = err
			d.logger.Warn("error parsing definer response",
				"term", term,
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		d.logger.Debug("defined term", "term", term, "senses", len(senses))
		return senses, nil
	}

	d.logger.Error("failed to parse definer response after retries", "term", term, "err", lastErr)
	return nil, fmt.Errorf("defining %q: %w", term, lastErr)
}

// parseSenses decodes a model response, dropping senses without a
// definition and keeping at most maxSenses.
func parseSenses(raw string, maxSenses int) ([]ai.Sense, error) {
	var result lookup
	if err := json.Unmarshal([]byte(repairJSON(stripCodeFences(raw))), &result); err != nil {
		return nil, err
	}

	senses := make([]ai.Sense, 0, len(result.Senses))
	for _, s := range result.Senses {
		def := strings.TrimSpace(s.Definition)
		if def == "" {
			continue
		}
		senses = append(senses, ai.Sense{
			PartOfSpeech: ai.NormalizePartOfSpeech(s.PartOfSpeech),
			Definition:   def,
			Example:      strings.TrimSpace(s.Example),
		})
		if len(senses) == maxSenses {
			break
		}
	}
	return senses, nil
}

package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/lexicon/core"
)

// Key prefixes for different data types
const (
	entryPrefix        = "entrec:"
	entryKindPrefix    = "entkind:"
	entryTagPrefix     = "enttag:"
	entryPrimaryPrefix = "entprim:"
	tagCountPrefix     = "tagcnt:"
	entryIDSeq         = "entseq"
)

// makeEntryKey generates a key for an entry by ID.
// Format: prefix + 8 byte ID, so a prefix scan returns entries in ID order.
func makeEntryKey(id core.ID) []byte {
	buf := make([]byte, len(entryPrefix)+8)
	offset := copy(buf, entryPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeKindKey generates a composite key for the kind index.
// Format: prefix:kind:id
func makeKindKey(kind core.Kind, id core.ID) []byte {
	prefix := makePartialKindKey(kind)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialKindKey generates the scan prefix for one kind.
func makePartialKindKey(kind core.Kind) []byte {
	return []byte(fmt.Sprintf("%s%d:", entryKindPrefix, int(kind)))
}

// makeTagKey generates a composite key for the tag index.
// Format: prefix + tag + NUL + id. The separator keeps a scan for "iron"
// from picking up "irony".
func makeTagKey(tag string, id core.ID) []byte {
	prefix := makePartialTagKey(tag)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTagKey generates the scan prefix for one tag.
func makePartialTagKey(tag string) []byte {
	return []byte(entryTagPrefix + tag + "\x00")
}

// makePrimaryKey generates the uniqueness key for an entry's kind and
// case-folded primary text.
func makePrimaryKey(entry core.Entry) []byte {
	content := entry.Kind().String() + ":" + strings.ToLower(strings.TrimSpace(core.PrimaryText(entry)))
	buf := make([]byte, len(entryPrimaryPrefix)+8)
	offset := copy(buf, entryPrimaryPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(content)))
	return buf
}

// makeTagCountKey generates the usage counter key for a tag.
func makeTagCountKey(tag string) []byte {
	return []byte(tagCountPrefix + tag)
}

// idFromKeySuffix reads the trailing 8 byte ID of an index key.
func idFromKeySuffix(key []byte) core.ID {
	if len(key) < 8 {
		return 0
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

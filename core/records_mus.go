package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored entry types. Entries are encoded as a kind
// tag followed by the variant's fields in declaration order.
var (
	IDMUS     = idMUS{}
	KindMUS   = kindMUS{}
	TagsMUS   = tagsMUS{}
	HeaderMUS = headerMUS{}
	EntryMUS  = entryMUS{}
	TimeMUS   = timeMUS{}
)

var (
	_ mus.Serializer[ID]        = IDMUS
	_ mus.Serializer[Kind]      = KindMUS
	_ mus.Serializer[[]string]  = TagsMUS
	_ mus.Serializer[Header]    = HeaderMUS
	_ mus.Serializer[Entry]     = EntryMUS
	_ mus.Serializer[time.Time] = TimeMUS
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type kindMUS struct{}

func (kindMUS) Marshal(v Kind, bs []byte) (n int) {
	return varint.Int64.Marshal(int64(v), bs)
}

func (kindMUS) Unmarshal(bs []byte) (v Kind, n int, err error) {
	i, n, err := varint.Int64.Unmarshal(bs)
	return Kind(i), n, err
}

func (kindMUS) Size(v Kind) (size int) {
	return varint.Int64.Size(int64(v))
}

func (kindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

// timeMUS stores Unix microseconds; the zero time is stored as 0.
type timeMUS struct{}

func (timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(unixMicro(v), bs)
}

func (timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || us == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func (timeMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(unixMicro(v))
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

type tagsMUS struct{}

func (tagsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func (tagsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	if length == 0 {
		return nil, n, nil
	}
	if length > uint64(len(bs)) {
		return nil, n, ErrTruncatedData
	}
	v = make([]string, length)
	var n1 int
	for i := range v {
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (tagsMUS) Size(v []string) (size int) {
	size = varint.Uint64.Size(uint64(len(v)))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return
}

func (tagsMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := uint64(0); i < length; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type headerMUS struct{}

func (headerMUS) Marshal(v Header, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += TagsMUS.Marshal(v.Tags, bs[n:])
	n += TimeMUS.Marshal(v.InsertedAt, bs[n:])
	n += TimeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (headerMUS) Unmarshal(bs []byte) (v Header, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Tags, n1, err = TagsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (headerMUS) Size(v Header) (size int) {
	size = IDMUS.Size(v.Id)
	size += TagsMUS.Size(v.Tags)
	size += TimeMUS.Size(v.InsertedAt)
	return size + TimeMUS.Size(v.UpdatedAt)
}

func (headerMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = TagsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = TimeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = TimeMUS.Skip(bs[n:])
	n += n1
	return
}

// entryFields lists the variant-specific string fields in wire order.
type entryFields struct{}

var _ Visitor[[]*string] = entryFields{}

func (entryFields) VisitWord(w *Word) []*string {
	return []*string{&w.Name, &w.Definition, &w.Notes}
}

func (entryFields) VisitPhrase(p *Phrase) []*string {
	return []*string{&p.Body, &p.Definition, &p.Notes}
}

func (entryFields) VisitQuote(q *Quote) []*string {
	return []*string{&q.Body, &q.Source, &q.Notes}
}

func (entryFields) VisitHypothetical(h *Hypothetical) []*string {
	return []*string{&h.Body, &h.Notes}
}

type entryMUS struct{}

func (entryMUS) Marshal(v Entry, bs []byte) (n int) {
	n = KindMUS.Marshal(v.Kind(), bs)
	n += HeaderMUS.Marshal(*v.Meta(), bs[n:])
	for _, f := range Visit[[]*string](v, entryFields{}) {
		n += ord.String.Marshal(*f, bs[n:])
	}
	return
}

func (entryMUS) Unmarshal(bs []byte) (v Entry, n int, err error) {
	kind, n, err := KindMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v, err = NewEntry(kind)
	if err != nil {
		return nil, n, ErrUnknownEntryTag
	}
	var n1 int
	*v.Meta(), n1, err = HeaderMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	for _, f := range Visit[[]*string](v, entryFields{}) {
		*f, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return
}

func (entryMUS) Size(v Entry) (size int) {
	size = KindMUS.Size(v.Kind())
	size += HeaderMUS.Size(*v.Meta())
	for _, f := range Visit[[]*string](v, entryFields{}) {
		size += ord.String.Size(*f)
	}
	return
}

func (entryMUS) Skip(bs []byte) (n int, err error) {
	kind, n, err := KindMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v, err := NewEntry(kind)
	if err != nil {
		return n, ErrUnknownEntryTag
	}
	var n1 int
	n1, err = HeaderMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for range Visit[[]*string](v, entryFields{}) {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

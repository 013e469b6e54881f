// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/lexicon/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalEntry serializes an Entry of any kind to bytes.
func MarshalEntry(entry core.Entry) []byte {
	buf := make([]byte, core.EntryMUS.Size(entry))
	core.EntryMUS.Marshal(entry, buf)
	return buf
}

// UnmarshalEntry deserializes an Entry, restoring its concrete variant.
func UnmarshalEntry(data []byte) (core.Entry, error) {
	entry, _, err := core.EntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return entry, nil
}

// MarshalCount serializes a tag usage counter.
func MarshalCount(count int) []byte {
	buf := make([]byte, varint.Int64.Size(int64(count)))
	varint.Int64.Marshal(int64(count), buf)
	return buf
}

// UnmarshalCount deserializes a tag usage counter.
func UnmarshalCount(data []byte) (int, error) {
	count, _, err := varint.Int64.Unmarshal(data)
	return int(count), err
}

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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrInvalidKind indicates an unknown Kind value.
	ErrInvalidKind = errors.New("invalid entry kind")

	// ErrEmptyPrimary indicates the primary text (name or body) is empty.
	ErrEmptyPrimary = errors.New("primary text cannot be empty")

	// ErrEmptyTag indicates a tag is blank after trimming.
	ErrEmptyTag = errors.New("tag cannot be empty")

	// ErrUnknownEntryTag indicates serialized data carries an unknown kind tag.
	ErrUnknownEntryTag = errors.New("unknown entry tag")

	// ErrTruncatedData indicates serialized data ended before a value was complete.
	ErrTruncatedData = errors.New("truncated data")
)

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


package ranking

import "errors"

var (
	// ErrEmptyRuleTable indicates a rule table was built with no rules.
	ErrEmptyRuleTable = errors.New("rule table has no rules")

	// ErrInvalidRule indicates a rule is missing its extractor or predicate.
	ErrInvalidRule = errors.New("invalid rule")
)

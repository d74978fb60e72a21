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
	// ErrInvalidReport indicates a Report failed validation.
	ErrInvalidReport = errors.New("invalid report")

	// ErrInvalidKind indicates a kind other than lost or found.
	ErrInvalidKind = errors.New("invalid report kind")

	// ErrEmptyReport indicates title, description and location are all blank.
	ErrEmptyReport = errors.New("report text cannot be empty")

	// ErrUnknownField indicates a clarification for a field outside the question catalog.
	ErrUnknownField = errors.New("unknown clarification field")

	// ErrNegativeLength indicates an encoded collection with a negative length prefix.
	ErrNegativeLength = errors.New("negative length")

	// ErrLengthOverflow indicates an encoded collection longer than its buffer.
	ErrLengthOverflow = errors.New("length exceeds buffer")
)

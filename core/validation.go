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

import (
	"fmt"
	"strings"
)

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindLost:
		return KindLost, nil
	case KindFound:
		return KindFound, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// ParseFieldKey converts user input into one of the clarifiable field keys.
func ParseFieldKey(s string) (FieldKey, error) {
	switch key := FieldKey(strings.ToLower(strings.TrimSpace(s))); key {
	case FieldBrand, FieldColors, FieldItemType, FieldUniqueMarks:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// ValidateReport validates a Report before it is stored.
//
// Validation rules:
//   - Kind must be lost or found
//   - Title, Description and LocationText must not all be blank
//
// NOT validated:
//   - EventTime (unparseable values simply contribute nothing to scoring)
//   - Features (undecodable records are treated as empty)
func ValidateReport(report *Report) error {
	if report == nil {
		return fmt.Errorf("%w: report is nil", ErrInvalidReport)
	}

	if report.Kind != KindLost && report.Kind != KindFound {
		return fmt.Errorf("%w: %w: %q", ErrInvalidReport, ErrInvalidKind, report.Kind)
	}

	if strings.TrimSpace(report.SearchText()) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReport, ErrEmptyReport)
	}

	return nil
}

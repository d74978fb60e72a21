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

// Package normalize turns free report text into the canonical form every
// other stage works on.
//
// Normalize lowercases text and reduces it to ASCII letters, digits, hyphens
// and single spaces. Tokenize splits normalized text into words, breaking
// hyphenated words apart and dropping stopwords. Both are pure and total: any
// input, including the empty string, produces a result.
package normalize

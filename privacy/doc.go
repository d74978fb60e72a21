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

// Package privacy detects personal identifiers in report text.
//
// ExtractIdentifiers reduces emails, mobile numbers and long ID-like digit
// runs to salted one-way digests so that two reports mentioning the same
// contact detail can be linked without either one storing it. MaskSensitive is
// an independent display transform that obscures the same kinds of values in
// text shown to other users.
package privacy

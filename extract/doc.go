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

// Package extract derives a FeatureRecord from raw report text.
//
// Extraction works from fixed vocabularies: item categories and their
// synonyms, colors with aliases and shade modifiers, brands and mark keywords.
// The vocabularies are read-only tables built at package initialization.
//
// Every function in this package is total. Empty or unrecognized input
// simply yields empty fields.
package extract

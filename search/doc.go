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
// Package search provides the read-side workflows for lost and found reports.
//
// The Searcher type finds the best opposite-kind matches of a stored report:
//   - Candidates are every report of the opposite kind, newest first
//   - A retrieval shortlist is scored and ranked by the match package
//   - When the ranking is ambiguous, a single clarifying question is chosen
//     from the fields the report lacks
//
// Searcher also renders reports for display with contact details masked.
package search

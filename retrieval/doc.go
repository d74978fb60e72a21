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

// Package retrieval narrows a candidate pool down to a shortlist worth scoring
// in full.
//
// Two Retriever implementations exist. Prefix keeps the first N candidates in
// their given order. Ranked orders candidates by the text similarity a
// SimilarityBackend reports, and falls back to Prefix whenever the backend
// fails, so shortlisting itself never fails.
//
// TFIDF is the bundled SimilarityBackend: word unigram and bigram TF-IDF
// vectors compared by cosine similarity, fitted on the current report and its
// candidates together.
package retrieval

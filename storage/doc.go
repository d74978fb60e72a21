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

// Package storage provides the storage abstraction layer for lostfound.
//
// This package defines repository interfaces that decouple storage implementation
// from the matching workflows, plus the codec for the FeatureRecord string a
// report carries.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interface:
//
//	repo, err := badger.NewReportRepository(backend)  // storage.ReportRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Feature Records
//
// A report's FeatureRecord is stored as an opaque string. EncodeFeatureRecord
// produces the current "fr1:" form, a base64 wrapped MUS encoding.
// DecodeFeatureRecord also reads the older JSON object form. Anything it cannot
// read is an error, and DecodeFeatureRecordOrEmpty turns that error into an
// empty record so a single damaged report never breaks matching.
//
// FeatureCache memoizes decoding for the hot scoring path.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	reports, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer reports.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage

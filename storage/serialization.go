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

package storage

import (
	"github.com/poiesic/lostfound/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalReport serializes a Report to bytes.
func MarshalReport(report *core.Report) []byte {
	buf := make([]byte, core.ReportMUS.Size(*report))
	core.ReportMUS.Marshal(*report, buf)
	return buf
}

// UnmarshalReport deserializes a Report from bytes.
func UnmarshalReport(data []byte) (*core.Report, error) {
	report, _, err := core.ReportMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

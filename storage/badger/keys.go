package badger

import (
	"encoding/binary"

	"github.com/poiesic/lostfound/core"
)

const (
	reportPrefix     = "rep:"
	reportKindPrefix = "repk:"
	reportIDSeq      = "repseq"
	checkpointPrefix = "chkpt:"
)

// makeReportKey generates a key for a report by ID.
// Format: prefix + id (8 bytes, BigEndian so keys sort by ID)
func makeReportKey(id core.ID) []byte {
	buf := make([]byte, len(reportPrefix)+8)
	offset := copy(buf, reportPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeKindPrefix generates the index prefix shared by every report of a kind.
// Format: prefix + kind + ":"
func makeKindPrefix(kind core.Kind) []byte {
	return []byte(reportKindPrefix + string(kind) + ":")
}

// makeReportKindKey generates a composite key for the kind/recency index.
// Format: prefix:kind:createdAt:id
func makeReportKindKey(report *core.Report) []byte {
	prefix := makeKindPrefix(report.Kind)
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(report.CreatedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(report.Id))
	return buf
}

// makeKindSeekKey generates the last possible key for a kind, where reverse
// iteration over that kind starts.
func makeKindSeekKey(kind core.Kind) []byte {
	prefix := makeKindPrefix(kind)
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(checkpointPrefix + processorType)
}

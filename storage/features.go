package storage

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/lostfound/core"
)

// featureRecordPrefix marks the current encoding. A new layout gets a new prefix.
const featureRecordPrefix = "fr1:"

// EncodeFeatureRecord serializes a FeatureRecord into the string stored on a report.
// A nil record encodes like an empty one.
func EncodeFeatureRecord(fr *core.FeatureRecord) string {
	if fr == nil {
		fr = &core.FeatureRecord{}
	}
	buf := make([]byte, core.FeatureRecordMUS.Size(*fr))
	core.FeatureRecordMUS.Marshal(*fr, buf)
	return featureRecordPrefix + base64.StdEncoding.EncodeToString(buf)
}

// legacyFeatureRecord is the JSON object form feature records were first stored in.
type legacyFeatureRecord struct {
	Tokens      []string `json:"tokens"`
	ItemType    string   `json:"item_type"`
	Colors      []string `json:"colors"`
	Brand       string   `json:"brand"`
	UniqueMarks []string `json:"unique_marks"`
	Contained   []string `json:"contained"`
	Identifiers []string `json:"identifiers"`
}

// DecodeFeatureRecord parses a stored feature record string.
// The empty string decodes to an empty record.
func DecodeFeatureRecord(encoded string) (*core.FeatureRecord, error) {
	encoded = strings.TrimSpace(encoded)
	switch {
	case encoded == "":
		return &core.FeatureRecord{}, nil
	case strings.HasPrefix(encoded, featureRecordPrefix):
		return decodeMUS(encoded[len(featureRecordPrefix):])
	case strings.HasPrefix(encoded, "{"):
		return decodeLegacy(encoded)
	default:
		return nil, ErrUnknownEncoding
	}
}

// DecodeFeatureRecordOrEmpty is DecodeFeatureRecord with every failure
// replaced by an empty record.
func DecodeFeatureRecordOrEmpty(encoded string) *core.FeatureRecord {
	fr, err := DecodeFeatureRecord(encoded)
	if err != nil {
		return &core.FeatureRecord{}
	}
	return fr
}

func decodeMUS(payload string) (*core.FeatureRecord, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	fr, n, err := core.FeatureRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &fr, nil
}

func decodeLegacy(encoded string) (*core.FeatureRecord, error) {
	var legacy legacyFeatureRecord
	if err := json.Unmarshal([]byte(encoded), &legacy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &core.FeatureRecord{
		Tokens:      legacy.Tokens,
		ItemType:    legacy.ItemType,
		Colors:      sortedSet(legacy.Colors),
		Brand:       legacy.Brand,
		UniqueMarks: sortedSet(legacy.UniqueMarks),
		Contained:   legacy.Contained,
		Identifiers: sortedSet(legacy.Identifiers),
	}, nil
}

// sortedSet sorts s and drops duplicates.
func sortedSet(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := append([]string(nil), s...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

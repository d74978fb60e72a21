package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored reports.
// It is generated using database sequences or content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Kind says whether a report describes something lost or something found.
// A report's kind never changes once it is stored.
type Kind string

const (
	// KindLost is a report filed by someone who lost an item.
	KindLost Kind = "lost"
	// KindFound is a report filed by someone who found an item.
	KindFound Kind = "found"
)

// Opposite returns the kind a report is matched against.
func (k Kind) Opposite() Kind {
	if k == KindLost {
		return KindFound
	}
	return KindLost
}

// Report is a single lost or found submission.
//
// Features holds the encoded FeatureRecord derived from Title, Description and
// LocationText (plus ClarifyAnswer, if any). It is opaque outside the storage codec.
type Report struct {
	Id            ID
	Kind          Kind
	Title         string
	Description   string
	LocationText  string
	EventTime     string // Optional ISO-8601 timestamp, kept as submitted
	Features      string // Encoded FeatureRecord
	DuplicateOf   ID     // Same-kind report this one probably re-describes, 0 if none
	ClarifyKey    string // Field answered through a clarifying question
	ClarifyAnswer string
	CreatedAt     time.Time
}

// SubmissionText is the raw text the feature record is extracted from.
func (r *Report) SubmissionText() string {
	return r.Title + "\n" + r.Description + "\n" + r.LocationText
}

// SearchText is the text used for candidate retrieval and as a token fallback
// when a report carries no usable feature record.
func (r *Report) SearchText() string {
	return r.Title + " " + r.Description + " " + r.LocationText
}

// FeatureRecord is the privacy-safe structured summary of a report's free text.
//
// Set-valued fields (Colors, UniqueMarks, Identifiers) are kept sorted and
// duplicate-free so that encoding is deterministic. Identifiers only ever hold
// hash digests, never raw contact details.
type FeatureRecord struct {
	Tokens      []string
	ItemType    string
	Colors      []string
	Brand       string
	UniqueMarks []string
	Contained   []string
	Identifiers []string
}

// IsEmpty reports whether no attribute was extracted at all.
func (f *FeatureRecord) IsEmpty() bool {
	return f == nil || (len(f.Tokens) == 0 && f.ItemType == "" && len(f.Colors) == 0 &&
		f.Brand == "" && len(f.UniqueMarks) == 0 && len(f.Contained) == 0 && len(f.Identifiers) == 0)
}

// Clone returns a deep copy of the record.
func (f *FeatureRecord) Clone() *FeatureRecord {
	if f == nil {
		return &FeatureRecord{}
	}
	return &FeatureRecord{
		Tokens:      cloneStrings(f.Tokens),
		ItemType:    f.ItemType,
		Colors:      cloneStrings(f.Colors),
		Brand:       f.Brand,
		UniqueMarks: cloneStrings(f.UniqueMarks),
		Contained:   cloneStrings(f.Contained),
		Identifiers: cloneStrings(f.Identifiers),
	}
}

// FieldValue returns a comparable representation of a clarifiable field.
// List fields are compared as whole tuples. The empty string means the field is absent.
func (f *FeatureRecord) FieldValue(key FieldKey) string {
	if f == nil {
		return ""
	}
	switch key {
	case FieldBrand:
		return f.Brand
	case FieldItemType:
		return f.ItemType
	case FieldColors:
		return strings.Join(f.Colors, "\x1f")
	case FieldUniqueMarks:
		return strings.Join(f.UniqueMarks, "\x1f")
	default:
		return ""
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// FieldKey names a FeatureRecord field that a clarifying question can fill in.
type FieldKey string

const (
	FieldBrand       FieldKey = "brand"
	FieldColors      FieldKey = "colors"
	FieldItemType    FieldKey = "item_type"
	FieldUniqueMarks FieldKey = "unique_marks"
)

// MatchResult is the score of one candidate against the current report.
// Reasons only lists signals that fired, in evaluation order.
type MatchResult struct {
	OtherId ID
	Score   float64
	Reasons []string
}

// ClarifyingQuestion is a single attribute prompt shown to the reporter.
type ClarifyingQuestion struct {
	FieldKey FieldKey
	Text     string
}

// Checkpoint records how far a batch processor has progressed, so an
// interrupted run can resume where it stopped.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}

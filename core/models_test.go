package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "black wallet"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer report about a lost umbrella near the library gate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IDFromContent(tt.content) != IDFromContent(tt.content) {
				t.Errorf("IDFromContent() produced different IDs for same content")
			}
		})
	}

	if IDFromContent("content1") == IDFromContent("content2") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestKindOpposite(t *testing.T) {
	if KindLost.Opposite() != KindFound {
		t.Errorf("expected lost -> found")
	}
	if KindFound.Opposite() != KindLost {
		t.Errorf("expected found -> lost")
	}
}

func TestFeatureRecordCloneIsDeep(t *testing.T) {
	orig := &FeatureRecord{
		Tokens: []string{"black", "wallet"},
		Colors: []string{"black"},
		Brand:  "apple",
	}
	clone := orig.Clone()
	clone.Tokens[0] = "red"
	clone.Colors = append(clone.Colors, "red")

	if orig.Tokens[0] != "black" {
		t.Errorf("clone shares token storage with original")
	}
	if len(orig.Colors) != 1 {
		t.Errorf("clone shares color storage with original")
	}

	var nilRecord *FeatureRecord
	if !nilRecord.Clone().IsEmpty() {
		t.Errorf("clone of nil record should be empty")
	}
}

func TestFeatureRecordFieldValue(t *testing.T) {
	fr := &FeatureRecord{
		ItemType:    "phone",
		Colors:      []string{"blue", "light blue"},
		Brand:       "samsung",
		UniqueMarks: []string{"crack"},
	}

	cases := map[FieldKey]string{
		FieldBrand:       "samsung",
		FieldItemType:    "phone",
		FieldColors:      "blue\x1flight blue",
		FieldUniqueMarks: "crack",
		FieldKey("bogus"): "",
	}
	for key, want := range cases {
		if got := fr.FieldValue(key); got != want {
			t.Errorf("FieldValue(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestReportTexts(t *testing.T) {
	r := &Report{Title: "black wallet", Description: "leather", LocationText: "gate 2", CreatedAt: time.Now()}
	if got := r.SubmissionText(); got != "black wallet\nleather\ngate 2" {
		t.Errorf("SubmissionText() = %q", got)
	}
	if got := r.SearchText(); got != "black wallet leather gate 2" {
		t.Errorf("SearchText() = %q", got)
	}
}

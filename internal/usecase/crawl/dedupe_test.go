package crawl

import (
	"testing"
)

func TestDeduplicator_URLMatch(t *testing.T) {
	d := NewDeduplicator()

	d.Record("https://example.com/a", "Ice storm hits Columbia")

	if !d.Seen("https://example.com/a", "Completely different headline") {
		t.Error("Seen() = false for recorded URL")
	}
}

func TestDeduplicator_TitleMatch(t *testing.T) {
	d := NewDeduplicator()

	d.Record("https://example.com/a", "Ice Storm Hits Columbia, SC")

	// Same story republished under a tracking URL.
	if !d.Seen("https://example.com/b?utm_source=x", "ice storm hits columbia sc") {
		t.Error("Seen() = false for matching normalized title")
	}
}

func TestDeduplicator_EitherConditionDisqualifies(t *testing.T) {
	d := NewDeduplicator()
	d.Record("https://example.com/a", "First headline")

	tests := []struct {
		name  string
		url   string
		title string
		want  bool
	}{
		{name: "both new", url: "https://example.com/b", title: "Second headline", want: false},
		{name: "url seen", url: "https://example.com/a", title: "Second headline", want: true},
		{name: "title seen", url: "https://example.com/b", title: "First headline", want: true},
		{name: "both seen", url: "https://example.com/a", title: "First headline", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Seen(tt.url, tt.title); got != tt.want {
				t.Errorf("Seen(%q, %q) = %v, want %v", tt.url, tt.title, got, tt.want)
			}
		})
	}
}

func TestDeduplicator_AdmitIdempotent(t *testing.T) {
	d := NewDeduplicator()

	if !d.Admit("https://example.com/a", "Warming shelters open") {
		t.Error("first Admit() = false, want true")
	}
	if d.Admit("https://example.com/a", "Warming shelters open") {
		t.Error("second Admit() = true, want false")
	}
}

// TestDeduplicator_RejectionDoesNotRecord verifies that checking without
// recording leaves both sets untouched, so a relevant duplicate from a later
// source is still admitted after an earlier candidate was rejected.
func TestDeduplicator_RejectionDoesNotRecord(t *testing.T) {
	d := NewDeduplicator()

	if d.Seen("https://example.com/a", "Ice storm update") {
		t.Fatal("Seen() = true on empty deduplicator")
	}

	// The candidate was rejected downstream; nothing recorded.
	if !d.Admit("https://example.com/a", "Ice storm update") {
		t.Error("Admit() = false after a non-recording Seen check")
	}
}

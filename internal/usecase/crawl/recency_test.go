package crawl

import (
	"testing"
	"time"

	"stormfeed/internal/domain/entity"
)

// fixedNow is the reference time used across recency tests.
var fixedNow = time.Date(2026, time.January, 27, 12, 0, 0, 0, time.UTC)

func newTestFilter(general, redCross time.Duration) *RecencyFilter {
	f := NewRecencyFilter(general, redCross)
	f.now = func() time.Time { return fixedNow }
	return f
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "rss date with GMT",
			raw:  "Mon, 26 Jan 2026 14:30:00 GMT",
			want: time.Date(2026, time.January, 26, 14, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "rss date with numeric offset",
			raw:  "Mon, 26 Jan 2026 14:30:00 +0000",
			want: time.Date(2026, time.January, 26, 14, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "rss date with EST",
			raw:  "Mon, 26 Jan 2026 09:30:00 EST",
			want: time.Date(2026, time.January, 26, 9, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso with Z",
			raw:  "2026-01-26T09:15:00Z",
			want: time.Date(2026, time.January, 26, 9, 15, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso with colon offset",
			raw:  "2026-01-26T09:15:00-05:00",
			want: time.Date(2026, time.January, 26, 9, 15, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso with space separator",
			raw:  "2026-01-26 09:15:00",
			want: time.Date(2026, time.January, 26, 9, 15, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "day month year only",
			raw:  "26 Jan 2026",
			want: time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "empty",
			raw:  "",
			ok:   false,
		},
		{
			name: "prose date",
			raw:  "2 hours ago",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePublished(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParsePublished(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParsePublished(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRecencyFilter_GeneralWindow(t *testing.T) {
	f := newTestFilter(48*time.Hour, 7*24*time.Hour)

	tests := []struct {
		name      string
		published string
		want      bool
	}{
		{
			name:      "fresh article kept",
			published: "Mon, 26 Jan 2026 14:30:00 GMT",
			want:      true,
		},
		{
			name:      "exactly on the boundary kept",
			published: "Sun, 25 Jan 2026 12:00:00 GMT",
			want:      true,
		},
		{
			name:      "three days old dropped",
			published: "Sat, 24 Jan 2026 08:00:00 GMT",
			want:      false,
		},
		{
			name:      "stale archive hit dropped",
			published: "Mon, 01 Jan 2024 08:00:00 GMT",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := f.Keep(entity.Article{
				Title:     "Ice storm update for the Midlands",
				Published: tt.published,
			})
			if got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.published, got, tt.want)
			}
		})
	}
}

func TestRecencyFilter_RedCrossWindow(t *testing.T) {
	f := newTestFilter(48*time.Hour, 7*24*time.Hour)

	// Five days old: outside the general window, inside the red cross one.
	published := "Thu, 22 Jan 2026 10:00:00 GMT"

	kept, _ := f.Keep(entity.Article{
		Title:     "Red Cross shelters remain open in Columbia",
		Published: published,
	})
	if !kept {
		t.Error("Keep() = false for five-day-old red cross article, want true")
	}

	kept, _ = f.Keep(entity.Article{
		Title:     "Ice storm recovery continues in Columbia",
		Published: published,
	})
	if kept {
		t.Error("Keep() = true for five-day-old general article, want false")
	}
}

func TestRecencyFilter_RedCrossMentionInSummary(t *testing.T) {
	f := newTestFilter(48*time.Hour, 7*24*time.Hour)

	kept, _ := f.Keep(entity.Article{
		Title:     "Shelter update for Lexington County",
		Summary:   "The Red Cross says capacity remains available.",
		Published: "Thu, 22 Jan 2026 10:00:00 GMT",
	})
	if !kept {
		t.Error("Keep() = false when the red cross mention is in the summary")
	}
}

func TestRecencyFilter_UnparseableDateFallback(t *testing.T) {
	f := newTestFilter(48*time.Hour, 7*24*time.Hour)

	tests := []struct {
		name      string
		published string
		want      bool
	}{
		{
			name:      "current year and month kept",
			published: "Updated January 26, 2026 at 9:15 AM",
			want:      true,
		},
		{
			name:      "wrong year dropped",
			published: "Updated January 26, 2025 at 9:15 AM",
			want:      false,
		},
		{
			name:      "wrong month dropped",
			published: "Updated December 26, 2026",
			want:      false,
		},
		{
			name:      "empty date dropped",
			published: "",
			want:      false,
		},
		{
			name:      "relative date dropped",
			published: "2 hours ago",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := f.Keep(entity.Article{
				Title:     "Ice storm update",
				Published: tt.published,
			})
			if got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.published, got, tt.want)
			}
			if !parsed.IsZero() {
				t.Errorf("Keep(%q) parsed = %v, want zero time", tt.published, parsed)
			}
		})
	}
}

func TestSortByRecency(t *testing.T) {
	articles := []entity.Article{
		{ID: "a1", Published: "Mon, 26 Jan 2026 08:00:00 GMT"},
		{ID: "a2", Published: "some time recently"},
		{ID: "a3", Published: "Mon, 26 Jan 2026 16:00:00 GMT"},
		{ID: "a4", Published: "Mon, 26 Jan 2026 12:00:00 GMT"},
	}

	SortByRecency(articles)

	wantOrder := []string{"a3", "a4", "a1", "a2"}
	for i, want := range wantOrder {
		if articles[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, articles[i].ID, want)
		}
	}
}

func TestSortByRecency_UnparseableKeepOrder(t *testing.T) {
	articles := []entity.Article{
		{ID: "u1", Published: "yesterday-ish"},
		{ID: "u2", Published: ""},
		{ID: "d1", Published: "Mon, 26 Jan 2026 08:00:00 GMT"},
	}

	SortByRecency(articles)

	if articles[0].ID != "d1" {
		t.Fatalf("dated article not first: %v", articles)
	}
	if articles[1].ID != "u1" || articles[2].ID != "u2" {
		t.Errorf("unparseable articles reordered: %s, %s", articles[1].ID, articles[2].ID)
	}
}

package models

import (
	"math"
	"testing"
	"time"
)

func ptr(v float64) *float64 {
	return &v
}

func TestMeanRating(t *testing.T) {
	tests := []struct {
		name     string
		flick    WatchedFlick
		wantMean float64
		wantOK   bool
	}{
		{
			name:   "no ratings",
			flick:  WatchedFlick{Title: "Unrated"},
			wantOK: false,
		},
		{
			name:     "single rating",
			flick:    WatchedFlick{RatingTim: ptr(7.5)},
			wantMean: 7.5,
			wantOK:   true,
		},
		{
			name:     "two ratings",
			flick:    WatchedFlick{RatingMegan: ptr(6), RatingAlex: ptr(9)},
			wantMean: 7.5,
			wantOK:   true,
		},
		{
			name:     "all three ratings",
			flick:    WatchedFlick{RatingMegan: ptr(5), RatingAlex: ptr(7), RatingTim: ptr(9)},
			wantMean: 7,
			wantOK:   true,
		},
		{
			name:     "NaN counts as absent",
			flick:    WatchedFlick{RatingMegan: ptr(math.NaN()), RatingAlex: ptr(8)},
			wantMean: 8,
			wantOK:   true,
		},
		{
			name:   "all NaN",
			flick:  WatchedFlick{RatingTim: ptr(math.NaN())},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, ok := tt.flick.MeanRating()
			if ok != tt.wantOK {
				t.Fatalf("MeanRating() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && mean != tt.wantMean {
				t.Errorf("MeanRating() = %v, want %v", mean, tt.wantMean)
			}
		})
	}
}

func TestMeanRatingDisplay(t *testing.T) {
	flick := WatchedFlick{RatingMegan: ptr(6), RatingAlex: ptr(7)}
	display, ok := flick.MeanRatingDisplay()
	if !ok {
		t.Fatal("MeanRatingDisplay() ok = false, want true")
	}
	if display != "6.5" {
		t.Errorf("MeanRatingDisplay() = %q, want %q", display, "6.5")
	}

	if _, ok := (&WatchedFlick{}).MeanRatingDisplay(); ok {
		t.Error("MeanRatingDisplay() on unrated flick ok = true, want false")
	}
}

func TestRatingByName(t *testing.T) {
	flick := WatchedFlick{RatingMegan: ptr(5), RatingAlex: ptr(6), RatingTim: ptr(7)}

	tests := []struct {
		name  string
		rater string
		want  *float64
	}{
		{"megan", RaterMegan, flick.RatingMegan},
		{"alec maps to alex column", RaterAlec, flick.RatingAlex},
		{"tim", RaterTim, flick.RatingTim},
		{"unknown rater", "Gary", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flick.RatingByName(tt.rater); got != tt.want {
				t.Errorf("RatingByName(%q) = %v, want %v", tt.rater, got, tt.want)
			}
		})
	}
}

func TestTimeEntryDurationDisplay(t *testing.T) {
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"three and a half hours", base.Add(3*time.Hour + 25*time.Minute), "3h 25m"},
		{"under an hour", base.Add(45 * time.Minute), "0h 45m"},
		{"exact hours", base.Add(2 * time.Hour), "2h 0m"},
		{"end before start clamps to zero", base.Add(-1 * time.Hour), "0h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := TimeEntry{StartTime: base, EndTime: tt.end}
			if got := entry.DurationDisplay(); got != tt.want {
				t.Errorf("DurationDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

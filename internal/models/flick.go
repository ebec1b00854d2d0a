package models

import (
	"fmt"
	"math"
	"time"
)

// Rater display names. The club has exactly three raters; the alex
// column historically maps to the display name "Alec".
const (
	RaterMegan = "Megan"
	RaterAlec  = "Alec"
	RaterTim   = "Tim"
)

// RaterNames lists all rater display names in a fixed order
var RaterNames = []string{RaterMegan, RaterAlec, RaterTim}

// WatchedFlick represents one group-viewing record in the shared watch log
type WatchedFlick struct {
	ID             int64
	WatchedOn      time.Time
	Title          string
	RatingMegan    *float64
	RatingAlex     *float64
	RatingTim      *float64
	Description    string
	CommentMegan   string
	CommentAlex    string
	CommentTim     string
	PosterFilename string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ratings returns the three ratings in rater order (nil when absent)
func (f *WatchedFlick) Ratings() []*float64 {
	return []*float64{f.RatingMegan, f.RatingAlex, f.RatingTim}
}

// RatingByName returns the named rater's rating, nil when absent
func (f *WatchedFlick) RatingByName(name string) *float64 {
	switch name {
	case RaterMegan:
		return f.RatingMegan
	case RaterAlec:
		return f.RatingAlex
	case RaterTim:
		return f.RatingTim
	}
	return nil
}

// MeanRating returns the arithmetic mean of the present ratings.
// NaN values count as absent. ok is false when no rating is present;
// the zero value is never used to stand in for "no ratings".
func (f *WatchedFlick) MeanRating() (mean float64, ok bool) {
	sum := 0.0
	count := 0
	for _, r := range f.Ratings() {
		if r == nil || math.IsNaN(*r) {
			continue
		}
		sum += *r
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// MeanRatingDisplay returns the mean rating formatted to one decimal
// place, or ok=false when no rating is present.
func (f *WatchedFlick) MeanRatingDisplay() (string, bool) {
	mean, ok := f.MeanRating()
	if !ok {
		return "", false
	}
	return FormatRating(mean), true
}

// FormatRating formats a rating value to one decimal place
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// SuggestedFlick represents a movie suggestion awaiting a club viewing
type SuggestedFlick struct {
	ID                int64
	Title             string
	IMDBLink          string
	SuggestedByUserID int64
	SuggestedByName   string
	CreatedAt         time.Time
}

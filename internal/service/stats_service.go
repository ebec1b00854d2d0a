package service

import (
	"sort"

	"flicksclub/internal/models"
	"flicksclub/internal/repository"
)

// RatedFlick pairs a flick title with a rating value for stats displays
type RatedFlick struct {
	FlickID int64   `json:"flickId"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
}

// RaterStats summarizes one rater's scoring habits
type RaterStats struct {
	Name         string       `json:"name"`
	RatingsGiven int          `json:"ratingsGiven"`
	MeanGiven    float64      `json:"meanGiven"`
	Favorites    []RatedFlick `json:"favorites"`
}

// ClubStats is the full stats payload for the club dashboard
type ClubStats struct {
	TotalWatched int          `json:"totalWatched"`
	TopByMean    []RatedFlick `json:"topByMean"`
	HighestRated []RatedFlick `json:"highestRated"`
	Raters       []RaterStats `json:"raters"`
}

// StatsService computes club-wide rating statistics from the watch log
type StatsService struct {
	flickRepo *repository.FlickRepository
}

// NewStatsService creates a new stats service
func NewStatsService(flickRepo *repository.FlickRepository) *StatsService {
	return &StatsService{flickRepo: flickRepo}
}

// topByMeanLimit caps the leaderboard length
const topByMeanLimit = 10

// GetClubStats builds the stats payload. Ties on the highest rating are
// all reported, not broken arbitrarily.
func (s *StatsService) GetClubStats() (*ClubStats, error) {
	flicks, err := s.flickRepo.GetAllFlicks()
	if err != nil {
		return nil, err
	}

	stats := &ClubStats{TotalWatched: len(flicks)}

	// Leaderboard by mean rating
	for _, f := range flicks {
		if mean, ok := f.MeanRating(); ok {
			stats.TopByMean = append(stats.TopByMean, RatedFlick{
				FlickID: f.ID,
				Title:   f.Title,
				Rating:  mean,
			})
		}
	}
	sort.SliceStable(stats.TopByMean, func(i, j int) bool {
		return stats.TopByMean[i].Rating > stats.TopByMean[j].Rating
	})
	if len(stats.TopByMean) > topByMeanLimit {
		stats.TopByMean = stats.TopByMean[:topByMeanLimit]
	}

	// Highest single rating given by anyone, with ties
	best := -1.0
	for _, f := range flicks {
		for _, r := range f.Ratings() {
			if r != nil && *r > best {
				best = *r
			}
		}
	}
	if best >= 0 {
		for _, f := range flicks {
			for _, r := range f.Ratings() {
				if r != nil && *r == best {
					stats.HighestRated = append(stats.HighestRated, RatedFlick{
						FlickID: f.ID,
						Title:   f.Title,
						Rating:  best,
					})
					break
				}
			}
		}
	}

	// Per-rater totals and favorites (their highest rating, with ties)
	for _, name := range models.RaterNames {
		rs := RaterStats{Name: name}
		sum := 0.0
		bestGiven := -1.0

		for _, f := range flicks {
			r := f.RatingByName(name)
			if r == nil {
				continue
			}
			rs.RatingsGiven++
			sum += *r
			if *r > bestGiven {
				bestGiven = *r
			}
		}
		if rs.RatingsGiven > 0 {
			rs.MeanGiven = sum / float64(rs.RatingsGiven)
		}
		if bestGiven >= 0 {
			for _, f := range flicks {
				r := f.RatingByName(name)
				if r != nil && *r == bestGiven {
					rs.Favorites = append(rs.Favorites, RatedFlick{
						FlickID: f.ID,
						Title:   f.Title,
						Rating:  bestGiven,
					})
				}
			}
		}

		stats.Raters = append(stats.Raters, rs)
	}

	return stats, nil
}

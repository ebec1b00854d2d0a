package handlers

import (
	"net/http"

	"flicksclub/internal/service"
)

// StatsHandler handles club statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get returns the club-wide rating statistics
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetClubStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to compute stats", err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

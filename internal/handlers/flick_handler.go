package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"flicksclub/internal/service"
	"flicksclub/internal/validation"
)

// FlickHandler handles watch-log and suggestion HTTP requests
type FlickHandler struct {
	flickService *service.FlickService
}

// NewFlickHandler creates a new flick handler
func NewFlickHandler(flickService *service.FlickService) *FlickHandler {
	return &FlickHandler{flickService: flickService}
}

type flickRequest struct {
	WatchedOn      string   `json:"watchedOn"`
	Title          string   `json:"title"`
	RatingMegan    *float64 `json:"ratingMegan"`
	RatingAlex     *float64 `json:"ratingAlex"`
	RatingTim      *float64 `json:"ratingTim"`
	Description    string   `json:"description"`
	CommentMegan   string   `json:"commentMegan"`
	CommentAlex    string   `json:"commentAlex"`
	CommentTim     string   `json:"commentTim"`
	PosterFilename string   `json:"posterFilename"`
}

func (req flickRequest) toInput() service.FlickInput {
	return service.FlickInput{
		WatchedOn:      req.WatchedOn,
		Title:          req.Title,
		RatingMegan:    req.RatingMegan,
		RatingAlex:     req.RatingAlex,
		RatingTim:      req.RatingTim,
		Description:    req.Description,
		CommentMegan:   req.CommentMegan,
		CommentAlex:    req.CommentAlex,
		CommentTim:     req.CommentTim,
		PosterFilename: req.PosterFilename,
	}
}

// List returns the full watch log, newest first
func (h *FlickHandler) List(w http.ResponseWriter, r *http.Request) {
	flicks, err := h.flickService.GetAllFlicks()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list flicks", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newFlickViews(flicks))
}

// Get returns a single watch-log entry
func (h *FlickHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid flick ID", "", nil)
		return
	}

	flick, err := h.flickService.GetFlick(id)
	if err != nil {
		if errors.Is(err, service.ErrFlickNotFound) {
			respondWithError(w, http.StatusNotFound, "Flick not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to get flick", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, newFlickView(flick))
}

// Create adds a new watch-log entry
func (h *FlickHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req flickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	flick, err := h.flickService.CreateFlick(req.toInput())
	if err != nil {
		respondFlickError(w, err, "Failed to create flick")
		return
	}
	respondWithJSON(w, http.StatusCreated, newFlickView(flick))
}

// Update replaces a watch-log entry
func (h *FlickHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid flick ID", "", nil)
		return
	}

	var req flickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	flick, err := h.flickService.UpdateFlick(id, req.toInput())
	if err != nil {
		respondFlickError(w, err, "Failed to update flick")
		return
	}
	respondWithJSON(w, http.StatusOK, newFlickView(flick))
}

// Delete removes a watch-log entry
func (h *FlickHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid flick ID", "", nil)
		return
	}

	if err := h.flickService.DeleteFlick(id); err != nil {
		if errors.Is(err, service.ErrFlickNotFound) {
			respondWithError(w, http.StatusNotFound, "Flick not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete flick", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListSuggestions returns every open suggestion
func (h *FlickHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.flickService.GetAllSuggestions()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list suggestions", err)
		return
	}

	views := make([]suggestionView, 0, len(suggestions))
	for i := range suggestions {
		views = append(views, newSuggestionView(&suggestions[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// CreateSuggestion adds a suggestion for a future watch night
func (h *FlickHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Title    string `json:"title"`
		IMDBLink string `json:"imdbLink"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	suggestion, err := h.flickService.CreateSuggestion(req.Title, req.IMDBLink, user.ID)
	if err != nil {
		respondFlickError(w, err, "Failed to create suggestion")
		return
	}
	respondWithJSON(w, http.StatusCreated, newSuggestionView(suggestion))
}

// DeleteSuggestion removes a suggestion. Only the member who suggested
// it may withdraw it.
func (h *FlickHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid suggestion ID", "", nil)
		return
	}

	if err := h.flickService.DeleteSuggestion(id, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrSuggestionNotFound):
			respondWithError(w, http.StatusNotFound, "Suggestion not found", "", nil)
		case errors.Is(err, service.ErrNotOwner):
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete suggestion", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// MarkSuggestionWatched promotes a suggestion into the watch log
func (h *FlickHandler) MarkSuggestionWatched(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid suggestion ID", "", nil)
		return
	}

	var req struct {
		WatchedOn string `json:"watchedOn"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	watchedOn, err := validation.ValidateWatchDate(req.WatchedOn)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	flick, err := h.flickService.MarkSuggestionWatched(id, watchedOn)
	if err != nil {
		if errors.Is(err, service.ErrSuggestionNotFound) {
			respondWithError(w, http.StatusNotFound, "Suggestion not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to mark suggestion watched", err)
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, newFlickView(flick))
}

func respondFlickError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrFlickNotFound):
		respondWithError(w, http.StatusNotFound, "Flick not found", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

// parseIDParam reads a numeric path parameter
func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

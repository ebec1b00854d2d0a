package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"flicksclub/internal/models"
	"flicksclub/internal/service"
	"flicksclub/internal/study"
)

// StudyHandler handles flashcard study session HTTP requests. Sessions
// are per-user, in memory, and vanish on restart; nothing about a run
// is persisted.
type StudyHandler struct {
	deckService *service.DeckService

	mu       sync.Mutex
	sessions map[int64]*activeStudy
}

type activeStudy struct {
	deckPublicID string
	session      *study.Session
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(deckService *service.DeckService) *StudyHandler {
	return &StudyHandler{
		deckService: deckService,
		sessions:    make(map[int64]*activeStudy),
	}
}

// Start begins a study run over a deck, replacing any active one
func (h *StudyHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	publicID := r.PathValue("deckID")
	deck, err := h.deckService.GetDeck(publicID, user.ID)
	if err != nil {
		respondDeckError(w, err, "Failed to load deck")
		return
	}
	cards, err := h.deckService.GetCards(publicID, user.ID)
	if err != nil {
		respondDeckError(w, err, "Failed to load cards")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := study.NewSession(deck, cards, rng)
	if err != nil {
		if errors.Is(err, study.ErrNoCards) {
			respondWithError(w, http.StatusConflict, "Deck has no cards to study", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start study session", err)
		}
		return
	}

	h.mu.Lock()
	h.sessions[user.ID] = &activeStudy{deckPublicID: deck.PublicID, session: session}
	h.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, newStudyView(deck.PublicID, session))
}

// State returns the current study session state
func (h *StudyHandler) State(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) {})
}

// Next advances to the next card, wrapping past the end
func (h *StudyHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Next() })
}

// Previous steps back to the previous card, wrapping past the start
func (h *StudyHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Previous() })
}

// Flip toggles the current card between question and answer
func (h *StudyHandler) Flip(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Flip() })
}

// Star toggles the star on the current card
func (h *StudyHandler) Star(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.ToggleStar() })
}

// Restart reshuffles the deck and clears all progress
func (h *StudyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Restart() })
}

// Mark labels the current card known or review and advances
func (h *StudyHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status study.CardStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}
	if req.Status != study.StatusKnown && req.Status != study.StatusReview {
		respondWithError(w, http.StatusBadRequest, "Status must be known or review", "", nil)
		return
	}

	h.withSession(w, r, func(s *study.Session) { s.Mark(req.Status) })
}

// ApplyCardEdit pushes a persisted card change into every active
// session studying that deck, so an edit made mid-run shows up on the
// card in place without losing its position, status or star.
func (h *StudyHandler) ApplyCardEdit(deckPublicID string, card models.Flashcard) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, active := range h.sessions {
		if active.deckPublicID == deckPublicID {
			active.session.UpdateCard(card)
		}
	}
}

// End discards the active study session
func (h *StudyHandler) End(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	h.mu.Lock()
	delete(h.sessions, user.ID)
	h.mu.Unlock()

	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// withSession runs an action against the caller's active session and
// responds with the full refreshed state.
func (h *StudyHandler) withSession(w http.ResponseWriter, r *http.Request, action func(*study.Session)) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	h.mu.Lock()
	active, ok := h.sessions[user.ID]
	if !ok {
		h.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "No active study session", "", nil)
		return
	}

	action(active.session)
	view := newStudyView(active.deckPublicID, active.session)
	h.mu.Unlock()

	respondWithJSON(w, http.StatusOK, view)
}

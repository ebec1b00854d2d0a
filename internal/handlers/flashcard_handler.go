package handlers

import (
	"errors"
	"net/http"

	"flicksclub/internal/service"
	"flicksclub/internal/validation"
)

// FlashcardHandler handles deck and card HTTP requests. Decks are
// addressed by their public nanoid, never the database row ID. Card
// edits are forwarded to the study handler so active sessions pick
// them up in place.
type FlashcardHandler struct {
	deckService *service.DeckService
	study       *StudyHandler
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(deckService *service.DeckService, study *StudyHandler) *FlashcardHandler {
	return &FlashcardHandler{deckService: deckService, study: study}
}

// ListDecks returns the member's decks
func (h *FlashcardHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	decks, err := h.deckService.GetDecks(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list decks", err)
		return
	}

	views := make([]deckView, 0, len(decks))
	for i := range decks {
		views = append(views, newDeckView(&decks[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// CreateDeck makes a new empty deck
func (h *FlashcardHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	deck, err := h.deckService.CreateDeck(user.ID, req.Name)
	if err != nil {
		respondDeckError(w, err, "Failed to create deck")
		return
	}
	respondWithJSON(w, http.StatusCreated, newDeckView(deck))
}

// GetDeck returns a deck with its cards
func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	publicID := r.PathValue("deckID")
	deck, err := h.deckService.GetDeck(publicID, user.ID)
	if err != nil {
		respondDeckError(w, err, "Failed to get deck")
		return
	}

	cards, err := h.deckService.GetCards(publicID, user.ID)
	if err != nil {
		respondDeckError(w, err, "Failed to get cards")
		return
	}

	cardViews := make([]cardView, 0, len(cards))
	for i := range cards {
		cardViews = append(cardViews, newCardView(&cards[i]))
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  newDeckView(deck),
		"cards": cardViews,
	})
}

// UpdateDeck renames a deck
func (h *FlashcardHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	deck, err := h.deckService.UpdateDeck(r.PathValue("deckID"), user.ID, req.Name)
	if err != nil {
		respondDeckError(w, err, "Failed to update deck")
		return
	}
	respondWithJSON(w, http.StatusOK, newDeckView(deck))
}

// DeleteDeck removes a deck and all its cards
func (h *FlashcardHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	if err := h.deckService.DeleteDeck(r.PathValue("deckID"), user.ID); err != nil {
		respondDeckError(w, err, "Failed to delete deck")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// CreateCard adds a card to a deck
func (h *FlashcardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	card, err := h.deckService.CreateCard(r.PathValue("deckID"), user.ID, req.Question, req.Answer)
	if err != nil {
		respondDeckError(w, err, "Failed to create card")
		return
	}
	respondWithJSON(w, http.StatusCreated, newCardView(card))
}

// UpdateCard edits a card's question or answer
func (h *FlashcardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	cardID, err := parseIDParam(r, "cardID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card ID", "", nil)
		return
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	card, err := h.deckService.UpdateCard(r.PathValue("deckID"), user.ID, cardID, req.Question, req.Answer)
	if err != nil {
		respondDeckError(w, err, "Failed to update card")
		return
	}

	h.study.ApplyCardEdit(r.PathValue("deckID"), *card)

	respondWithJSON(w, http.StatusOK, newCardView(card))
}

// DeleteCard removes a card from a deck
func (h *FlashcardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	cardID, err := parseIDParam(r, "cardID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card ID", "", nil)
		return
	}

	if err := h.deckService.DeleteCard(r.PathValue("deckID"), user.ID, cardID); err != nil {
		respondDeckError(w, err, "Failed to delete card")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func respondDeckError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrDeckNotFound):
		respondWithError(w, http.StatusNotFound, "Deck not found", "", nil)
	case errors.Is(err, service.ErrCardNotFound):
		respondWithError(w, http.StatusNotFound, "Card not found", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

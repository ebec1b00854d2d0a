package service

import (
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/validation"
)

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrCardNotFound = errors.New("card not found")
)

// deckIDLength is the length of the nanoid exposed in deck URLs
const deckIDLength = 12

// DeckService handles flashcard deck business logic. Decks are
// owner-scoped: every operation checks the caller owns the deck.
type DeckService struct {
	deckRepo *repository.DeckRepository
}

// NewDeckService creates a new deck service
func NewDeckService(deckRepo *repository.DeckRepository) *DeckService {
	return &DeckService{deckRepo: deckRepo}
}

// CreateDeck creates a deck with a fresh public ID
func (s *DeckService) CreateDeck(userID int64, name string) (*models.Deck, error) {
	if err := validation.ValidateRequiredText("name", name); err != nil {
		return nil, err
	}

	publicID, err := gonanoid.New(deckIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deck id: %w", err)
	}

	return s.deckRepo.CreateDeck(publicID, userID, name)
}

// GetDecks returns all decks owned by a user
func (s *DeckService) GetDecks(userID int64) ([]models.Deck, error) {
	return s.deckRepo.GetDecksByUser(userID)
}

// GetDeck returns one deck if the caller owns it
func (s *DeckService) GetDeck(publicID string, userID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.GetDeckByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if deck == nil || deck.UserID != userID {
		return nil, ErrDeckNotFound
	}
	return deck, nil
}

// UpdateDeck renames a deck
func (s *DeckService) UpdateDeck(publicID string, userID int64, name string) (*models.Deck, error) {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("name", name); err != nil {
		return nil, err
	}

	if err := s.deckRepo.UpdateDeck(deck.ID, name); err != nil {
		return nil, fmt.Errorf("failed to update deck: %w", err)
	}
	return s.deckRepo.GetDeckByID(deck.ID)
}

// DeleteDeck removes a deck and its cards
func (s *DeckService) DeleteDeck(publicID string, userID int64) error {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return err
	}
	return s.deckRepo.DeleteDeck(deck.ID)
}

// GetCards returns all cards in a deck the caller owns
func (s *DeckService) GetCards(publicID string, userID int64) ([]models.Flashcard, error) {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return nil, err
	}
	return s.deckRepo.GetCardsByDeck(deck.ID)
}

// CreateCard adds a card to a deck the caller owns
func (s *DeckService) CreateCard(publicID string, userID int64, question, answer string) (*models.Flashcard, error) {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("question", question); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("answer", answer); err != nil {
		return nil, err
	}

	return s.deckRepo.CreateCard(deck.ID, userID, question, answer)
}

// UpdateCard edits a card in a deck the caller owns
func (s *DeckService) UpdateCard(publicID string, userID, cardID int64, question, answer string) (*models.Flashcard, error) {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return nil, err
	}

	card, err := s.deckRepo.GetCardByID(cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.DeckID != deck.ID {
		return nil, ErrCardNotFound
	}

	if err := validation.ValidateRequiredText("question", question); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("answer", answer); err != nil {
		return nil, err
	}

	if err := s.deckRepo.UpdateCard(cardID, question, answer); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return s.deckRepo.GetCardByID(cardID)
}

// DeleteCard removes a card from a deck the caller owns
func (s *DeckService) DeleteCard(publicID string, userID, cardID int64) error {
	deck, err := s.GetDeck(publicID, userID)
	if err != nil {
		return err
	}

	card, err := s.deckRepo.GetCardByID(cardID)
	if err != nil {
		return err
	}
	if card == nil || card.DeckID != deck.ID {
		return ErrCardNotFound
	}

	return s.deckRepo.DeleteCard(cardID)
}

package repository

import (
	"database/sql"
	"fmt"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// DeckRepository handles database operations for study decks and their cards
type DeckRepository struct {
	db database.DBTX
}

// NewDeckRepository creates a new deck repository
func NewDeckRepository(db database.DBTX) *DeckRepository {
	return &DeckRepository{db: db}
}

// CreateDeck inserts a new deck
func (r *DeckRepository) CreateDeck(publicID string, userID int64, name string) (*models.Deck, error) {
	query := `
		INSERT INTO decks (public_id, user_id, name)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, publicID, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	return r.GetDeckByID(id)
}

const deckColumns = `d.id, d.public_id, d.user_id, d.name,
	       (SELECT COUNT(*) FROM flashcards f WHERE f.deck_id = d.id), d.created_at, d.updated_at`

// GetDeckByID retrieves one deck with its card count
func (r *DeckRepository) GetDeckByID(id int64) (*models.Deck, error) {
	query := "SELECT " + deckColumns + " FROM decks d WHERE d.id = ?"
	return r.getDeck(query, id)
}

// GetDeckByPublicID retrieves one deck by its public identifier
func (r *DeckRepository) GetDeckByPublicID(publicID string) (*models.Deck, error) {
	query := "SELECT " + deckColumns + " FROM decks d WHERE d.public_id = ?"
	return r.getDeck(query, publicID)
}

func (r *DeckRepository) getDeck(query string, arg interface{}) (*models.Deck, error) {
	deck := &models.Deck{}
	err := r.db.QueryRow(query, arg).Scan(
		&deck.ID,
		&deck.PublicID,
		&deck.UserID,
		&deck.Name,
		&deck.CardCount,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	return deck, nil
}

// GetDecksByUser retrieves all decks owned by a user
func (r *DeckRepository) GetDecksByUser(userID int64) ([]models.Deck, error) {
	query := "SELECT " + deckColumns + " FROM decks d WHERE d.user_id = ? ORDER BY d.name ASC"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		err := rows.Scan(
			&d.ID,
			&d.PublicID,
			&d.UserID,
			&d.Name,
			&d.CardCount,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}

	return decks, rows.Err()
}

// UpdateDeck renames a deck
func (r *DeckRepository) UpdateDeck(id int64, name string) error {
	query := `
		UPDATE decks
		SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, id)
	return err
}

// DeleteDeck removes a deck and its cards
func (r *DeckRepository) DeleteDeck(id int64) error {
	_, err := r.db.Exec("DELETE FROM flashcards WHERE deck_id = ?", id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec("DELETE FROM decks WHERE id = ?", id)
	return err
}

// CreateCard adds a card to a deck
func (r *DeckRepository) CreateCard(deckID, userID int64, question, answer string) (*models.Flashcard, error) {
	query := `
		INSERT INTO flashcards (deck_id, user_id, question, answer)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, deckID, userID, question, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return r.GetCardByID(id)
}

// GetCardByID retrieves one card
func (r *DeckRepository) GetCardByID(id int64) (*models.Flashcard, error) {
	query := `
		SELECT id, deck_id, user_id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE id = ?
	`
	card := &models.Flashcard{}
	err := r.db.QueryRow(query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.UserID,
		&card.Question,
		&card.Answer,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// GetCardsByDeck retrieves all cards in a deck in insertion order
func (r *DeckRepository) GetCardsByDeck(deckID int64) ([]models.Flashcard, error) {
	query := `
		SELECT id, deck_id, user_id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE deck_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		err := rows.Scan(&c.ID, &c.DeckID, &c.UserID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// UpdateCard replaces the question and answer of a card
func (r *DeckRepository) UpdateCard(id int64, question, answer string) error {
	query := `
		UPDATE flashcards
		SET question = ?, answer = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, question, answer, id)
	return err
}

// DeleteCard removes a card
func (r *DeckRepository) DeleteCard(id int64) error {
	_, err := r.db.Exec("DELETE FROM flashcards WHERE id = ?", id)
	return err
}

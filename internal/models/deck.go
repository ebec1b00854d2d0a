package models

import "time"

// Deck is a named flashcard collection owned by a user
type Deck struct {
	ID        int64
	PublicID  string
	UserID    int64
	Name      string
	CardCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Flashcard is a question/answer pair belonging to a deck
type Flashcard struct {
	ID        int64
	DeckID    int64
	UserID    int64
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

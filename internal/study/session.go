// Package study implements the in-memory flashcard study session: a
// shuffled traversal of a deck with cyclic navigation and per-card
// session status. Sessions are single-user and synchronous; nothing
// here touches storage.
package study

import (
	"errors"
	"math/rand"
	"time"

	"flicksclub/internal/models"
)

// CardStatus is the per-card session mark
type CardStatus string

const (
	StatusKnown  CardStatus = "known"
	StatusReview CardStatus = "review"
)

// ErrNoCards is returned when a session is started from an empty deck
var ErrNoCards = errors.New("deck has no cards")

// Session is one study pass over a deck. The card order is a one-time
// uniform shuffle of the deck; navigation wraps around, so the session
// has no natural end. Status and star marks are keyed by card ID, not
// position, so they survive navigation and edits.
type Session struct {
	DeckID   int64
	DeckName string

	original []models.Flashcard
	order    []models.Flashcard
	position int
	flipped  bool
	status   map[int64]CardStatus
	starred  map[int64]bool
	rng      *rand.Rand
}

// NewSession shuffles cards into a study order and starts at position 0.
// A nil rng gets a time-seeded source.
func NewSession(deck *models.Deck, cards []models.Flashcard, rng *rand.Rand) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		DeckID:   deck.ID,
		DeckName: deck.Name,
		original: append([]models.Flashcard(nil), cards...),
		rng:      rng,
	}
	s.reset()
	return s, nil
}

// reset builds a fresh shuffled order and clears all session state as
// one operation.
func (s *Session) reset() {
	s.order = append([]models.Flashcard(nil), s.original...)
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	s.position = 0
	s.flipped = false
	s.status = make(map[int64]CardStatus)
	s.starred = make(map[int64]bool)
}

// Restart reshuffles the original deck order and clears every status
// and star. All-or-nothing: there is no partial reset.
func (s *Session) Restart() {
	s.reset()
}

// Current returns the card at the session position
func (s *Session) Current() models.Flashcard {
	return s.order[s.position]
}

// Position returns the zero-based position and session length
func (s *Session) Position() (int, int) {
	return s.position, len(s.order)
}

// Flipped reports whether the answer face is showing
func (s *Session) Flipped() bool {
	return s.flipped
}

// Next advances to the following card, wrapping from the last card back
// to the first, and turns the card question-side up.
func (s *Session) Next() {
	s.position = (s.position + 1) % len(s.order)
	s.flipped = false
}

// Previous steps back one card, wrapping from the first card to the
// last, and turns the card question-side up.
func (s *Session) Previous() {
	s.position = (s.position - 1 + len(s.order)) % len(s.order)
	s.flipped = false
}

// Flip toggles which face of the current card is showing
func (s *Session) Flip() {
	s.flipped = !s.flipped
}

// Mark sets the current card's status. Remarking overwrites.
func (s *Session) Mark(status CardStatus) {
	s.status[s.Current().ID] = status
}

// ToggleStar flips the current card's star, independent of its status
func (s *Session) ToggleStar() {
	id := s.Current().ID
	s.starred[id] = !s.starred[id]
}

// StatusOf returns the session status for a card, "" when unset
func (s *Session) StatusOf(cardID int64) CardStatus {
	return s.status[cardID]
}

// IsStarred reports whether a card is starred
func (s *Session) IsStarred(cardID int64) bool {
	return s.starred[cardID]
}

// Counts returns how many cards are marked known, marked for review,
// and starred.
func (s *Session) Counts() (known, review, starred int) {
	for _, st := range s.status {
		switch st {
		case StatusKnown:
			known++
		case StatusReview:
			review++
		}
	}
	for _, on := range s.starred {
		if on {
			starred++
		}
	}
	return known, review, starred
}

// UpdateCard applies an edit to the in-session copy of a card, in
// place, without reshuffling or touching position, statuses or stars.
func (s *Session) UpdateCard(card models.Flashcard) {
	for i := range s.order {
		if s.order[i].ID == card.ID {
			s.order[i].Question = card.Question
			s.order[i].Answer = card.Answer
		}
	}
	for i := range s.original {
		if s.original[i].ID == card.ID {
			s.original[i].Question = card.Question
			s.original[i].Answer = card.Answer
		}
	}
}

// Order returns the session's card order, for progress displays
func (s *Session) Order() []models.Flashcard {
	return s.order
}

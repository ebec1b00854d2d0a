package study

import (
	"math/rand"
	"testing"

	"flicksclub/internal/models"
)

func testDeck() *models.Deck {
	return &models.Deck{ID: 1, PublicID: "abc123def456", Name: "French Verbs"}
}

func testCards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, models.Flashcard{
			ID:       int64(i + 1),
			DeckID:   1,
			Question: "Q",
			Answer:   "A",
		})
	}
	return cards
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := NewSession(testDeck(), testCards(n), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return s
}

func TestNewSessionEmptyDeck(t *testing.T) {
	_, err := NewSession(testDeck(), nil, rand.New(rand.NewSource(1)))
	if err != ErrNoCards {
		t.Errorf("NewSession() error = %v, want ErrNoCards", err)
	}
}

func TestSessionOrderIsPermutation(t *testing.T) {
	s := newTestSession(t, 10)

	seen := make(map[int64]bool)
	for _, card := range s.Order() {
		if seen[card.ID] {
			t.Errorf("card %d appears twice in session order", card.ID)
		}
		seen[card.ID] = true
	}
	if len(seen) != 10 {
		t.Errorf("session order has %d distinct cards, want 10", len(seen))
	}
}

func TestNavigationWraps(t *testing.T) {
	s := newTestSession(t, 4)

	for i := 0; i < 4; i++ {
		s.Next()
	}
	if pos, _ := s.Position(); pos != 0 {
		t.Errorf("position after 4 Next() on 4 cards = %d, want 0", pos)
	}

	s.Previous()
	if pos, _ := s.Position(); pos != 3 {
		t.Errorf("position after Previous() from 0 = %d, want 3", pos)
	}
}

func TestNavigationResetsFlip(t *testing.T) {
	s := newTestSession(t, 3)

	s.Flip()
	if !s.Flipped() {
		t.Fatal("Flip() did not show the answer face")
	}

	s.Next()
	if s.Flipped() {
		t.Error("Next() left the answer face showing")
	}

	s.Flip()
	s.Previous()
	if s.Flipped() {
		t.Error("Previous() left the answer face showing")
	}
}

func TestMarksSurviveNavigation(t *testing.T) {
	s := newTestSession(t, 5)

	first := s.Current()
	s.Mark(StatusReview)
	s.ToggleStar()

	// Walk all the way around the deck
	for i := 0; i < 5; i++ {
		s.Next()
	}

	if got := s.StatusOf(first.ID); got != StatusReview {
		t.Errorf("StatusOf(%d) = %q, want %q", first.ID, got, StatusReview)
	}
	if !s.IsStarred(first.ID) {
		t.Errorf("card %d lost its star after navigation", first.ID)
	}
}

func TestMarkOverwrites(t *testing.T) {
	s := newTestSession(t, 3)

	s.Mark(StatusReview)
	s.Mark(StatusKnown)

	if got := s.StatusOf(s.Current().ID); got != StatusKnown {
		t.Errorf("status after remark = %q, want %q", got, StatusKnown)
	}

	known, review, _ := s.Counts()
	if known != 1 || review != 0 {
		t.Errorf("Counts() = (%d known, %d review), want (1, 0)", known, review)
	}
}

func TestCountsTrackAllMarks(t *testing.T) {
	s := newTestSession(t, 4)

	s.Mark(StatusKnown)
	s.Next()
	s.Mark(StatusReview)
	s.ToggleStar()
	s.Next()
	s.Mark(StatusKnown)

	known, review, starred := s.Counts()
	if known != 2 || review != 1 || starred != 1 {
		t.Errorf("Counts() = (%d, %d, %d), want (2, 1, 1)", known, review, starred)
	}
}

func TestToggleStarTwiceClearsIt(t *testing.T) {
	s := newTestSession(t, 2)

	s.ToggleStar()
	s.ToggleStar()

	if s.IsStarred(s.Current().ID) {
		t.Error("double ToggleStar() left the card starred")
	}
	if _, _, starred := s.Counts(); starred != 0 {
		t.Errorf("starred count = %d, want 0", starred)
	}
}

func TestRestartClearsEverything(t *testing.T) {
	s := newTestSession(t, 6)

	s.Mark(StatusKnown)
	s.ToggleStar()
	s.Next()
	s.Mark(StatusReview)
	s.Flip()

	s.Restart()

	if pos, total := s.Position(); pos != 0 || total != 6 {
		t.Errorf("Position() after restart = (%d, %d), want (0, 6)", pos, total)
	}
	if s.Flipped() {
		t.Error("Restart() left the answer face showing")
	}

	known, review, starred := s.Counts()
	if known != 0 || review != 0 || starred != 0 {
		t.Errorf("Counts() after restart = (%d, %d, %d), want all zero", known, review, starred)
	}

	seen := make(map[int64]bool)
	for _, card := range s.Order() {
		seen[card.ID] = true
	}
	if len(seen) != 6 {
		t.Errorf("restarted order has %d distinct cards, want 6", len(seen))
	}
}

func TestUpdateCardInPlace(t *testing.T) {
	s := newTestSession(t, 3)

	target := s.Current()
	s.Mark(StatusKnown)
	posBefore, _ := s.Position()

	s.UpdateCard(models.Flashcard{ID: target.ID, Question: "New Q", Answer: "New A"})

	if got := s.Current(); got.Question != "New Q" || got.Answer != "New A" {
		t.Errorf("Current() after edit = (%q, %q), want updated text", got.Question, got.Answer)
	}
	if pos, _ := s.Position(); pos != posBefore {
		t.Errorf("position changed after edit: %d -> %d", posBefore, pos)
	}
	if got := s.StatusOf(target.ID); got != StatusKnown {
		t.Errorf("status lost after edit: %q", got)
	}
}

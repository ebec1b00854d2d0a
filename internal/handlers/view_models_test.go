package handlers

import (
	"math/rand"
	"testing"
	"time"

	"flicksclub/internal/models"
	"flicksclub/internal/study"
	"flicksclub/internal/trivia"
)

func TestNewFlickView(t *testing.T) {
	rating := 8.0
	other := 7.0
	flick := &models.WatchedFlick{
		ID:          3,
		WatchedOn:   time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		Title:       "Jaws",
		RatingMegan: &rating,
		RatingTim:   &other,
	}

	view := newFlickView(flick)
	if view.WatchedOn != "2025-07-04" {
		t.Errorf("WatchedOn = %q, want 2025-07-04", view.WatchedOn)
	}
	if view.MeanRating == nil || *view.MeanRating != "7.5" {
		t.Errorf("MeanRating = %v, want 7.5", view.MeanRating)
	}
	if view.RatingAlex != nil {
		t.Errorf("RatingAlex = %v, want nil", view.RatingAlex)
	}
}

func TestNewFlickViewUnrated(t *testing.T) {
	view := newFlickView(&models.WatchedFlick{Title: "Unseen"})
	if view.MeanRating != nil {
		t.Errorf("MeanRating = %v, want nil for unrated flick", view.MeanRating)
	}
}

func TestNewStudyView(t *testing.T) {
	deck := &models.Deck{ID: 1, PublicID: "deckpub12345", Name: "Capitals"}
	cards := []models.Flashcard{
		{ID: 1, Question: "France", Answer: "Paris"},
		{ID: 2, Question: "Japan", Answer: "Tokyo"},
		{ID: 3, Question: "Peru", Answer: "Lima"},
	}

	session, err := study.NewSession(deck, cards, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	session.Mark(study.StatusKnown)
	session.ToggleStar()

	view := newStudyView(deck.PublicID, session)
	if view.DeckID != "deckpub12345" {
		t.Errorf("DeckID = %q, want the deck public ID", view.DeckID)
	}
	if view.Total != 3 || view.Position != 0 {
		t.Errorf("position/total = %d/%d, want 0/3", view.Position, view.Total)
	}
	if view.CardStatus != study.StatusKnown {
		t.Errorf("CardStatus = %q, want %q", view.CardStatus, study.StatusKnown)
	}
	if !view.CardStarred {
		t.Error("CardStarred = false, want true")
	}
	if view.KnownCount != 1 || view.StarredCount != 1 {
		t.Errorf("counts = (%d known, %d starred), want (1, 1)", view.KnownCount, view.StarredCount)
	}
}

func TestNewPlayQuestionViewHidesAnswer(t *testing.T) {
	game := &activeGame{
		sessionID: 9,
		questions: []trivia.Question{
			{Text: "Q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{Text: "Q2", Options: []string{"c", "d"}, CorrectAnswer: "d"},
		},
		index: 1,
	}

	view := newPlayQuestionView(game)
	if view.QuestionText != "Q2" {
		t.Errorf("QuestionText = %q, want Q2", view.QuestionText)
	}
	if view.Index != 1 || view.Total != 2 {
		t.Errorf("index/total = %d/%d, want 1/2", view.Index, view.Total)
	}
	if len(view.Options) != 2 {
		t.Errorf("options = %v, want both options", view.Options)
	}
}

func TestNewGameHistoryView(t *testing.T) {
	started := time.Date(2025, time.May, 1, 20, 0, 0, 0, time.UTC)
	completed := started.Add(10 * time.Minute)

	open := newGameHistoryView(&models.TriviaSession{ID: 1, TotalQuestions: 10, StartedAt: started})
	if open.Completed {
		t.Error("session without completed_at reported as completed")
	}

	done := newGameHistoryView(&models.TriviaSession{ID: 2, TotalQuestions: 10, Score: 7, StartedAt: started, CompletedAt: &completed})
	if !done.Completed {
		t.Error("finished session reported as incomplete")
	}
	if done.Score != 7 {
		t.Errorf("Score = %d, want 7", done.Score)
	}
}

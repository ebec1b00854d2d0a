package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"flicksclub/internal/repository"
	"flicksclub/internal/service"
	"flicksclub/internal/trivia"
)

func floatRating(v float64) *float64 {
	return &v
}

func TestFinalAnswerRetryableWhenPersistFails(t *testing.T) {
	db := openHandlerDB(t)
	user := createTestMember(t, db)

	flickRepo := repository.NewFlickRepository(db)
	flickService := service.NewFlickService(flickRepo, repository.NewSuggestionRepository(db))
	for i := 0; i < 3; i++ {
		_, err := flickService.CreateFlick(service.FlickInput{
			WatchedOn:   fmt.Sprintf("2025-03-%02d", i+1),
			Title:       fmt.Sprintf("Test Flick %d", i+1),
			RatingMegan: floatRating(5),
			RatingAlex:  floatRating(float64(6 + i)),
			RatingTim:   floatRating(7.5),
		})
		if err != nil {
			t.Fatalf("Failed to create flick: %v", err)
		}
	}

	triviaService := service.NewTriviaService(
		flickRepo,
		repository.NewQuestionRepository(db),
		repository.NewTriviaRepository(db),
		db,
		trivia.NewGenerator(rand.New(rand.NewSource(3))),
	)
	h := NewTriviaHandler(triviaService)

	r := authedRequest(user, http.MethodPost, "/api/trivia/start", "")
	w := httptest.NewRecorder()
	h.Start(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Start() status = %d: %s", w.Code, w.Body.String())
	}

	h.mu.Lock()
	game := h.games[user.ID]
	h.mu.Unlock()
	if game == nil {
		t.Fatal("no active game after start")
	}

	// Answer everything except the final question
	for {
		h.mu.Lock()
		index, total := game.index, len(game.questions)
		var answer string
		if index < total-1 {
			answer = game.questions[index].CorrectAnswer
		}
		h.mu.Unlock()
		if index >= total-1 {
			break
		}

		r = authedRequest(user, http.MethodPost, "/api/trivia/answer", fmt.Sprintf(`{"answer":%q}`, answer))
		w = httptest.NewRecorder()
		h.Answer(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("Answer() status = %d: %s", w.Code, w.Body.String())
		}
	}

	// Break the store, then submit the final answer
	db.Close()

	h.mu.Lock()
	final := game.questions[game.index].CorrectAnswer
	h.mu.Unlock()

	r = authedRequest(user, http.MethodPost, "/api/trivia/answer", fmt.Sprintf(`{"answer":%q}`, final))
	w = httptest.NewRecorder()
	h.Answer(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Answer() with closed store status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	h.mu.Lock()
	stillActive := h.games[user.ID]
	h.mu.Unlock()
	if stillActive == nil {
		t.Fatal("game discarded even though the score was never persisted")
	}
	if stillActive.index != len(stillActive.questions)-1 {
		t.Errorf("game index = %d, want %d; the unpersisted final answer must stay pending",
			stillActive.index, len(stillActive.questions)-1)
	}
}

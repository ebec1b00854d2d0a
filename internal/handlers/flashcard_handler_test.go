package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/service"
)

func openHandlerDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := t.TempDir() + "/test.db"
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createTestMember(t *testing.T, db *database.DB) *models.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).CreateUser("megan@example.com", "not-a-real-hash", "Megan")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// authedRequest builds a request carrying the user the way RequireAuth
// would have placed it.
func authedRequest(user *models.User, method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), UserContextKey, user)
	return r.WithContext(ctx)
}

func TestUpdateCardReachesActiveStudySession(t *testing.T) {
	db := openHandlerDB(t)
	user := createTestMember(t, db)

	deckService := service.NewDeckService(repository.NewDeckRepository(db))
	studyHandler := NewStudyHandler(deckService)
	flashcardHandler := NewFlashcardHandler(deckService, studyHandler)

	deck, err := deckService.CreateDeck(user.ID, "Directors")
	if err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	card, err := deckService.CreateCard(deck.PublicID, user.ID, "Who directed Alien?", "Ridley Scott")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	r := authedRequest(user, http.MethodPost, "/api/decks/"+deck.PublicID+"/study/start", "")
	r.SetPathValue("deckID", deck.PublicID)
	w := httptest.NewRecorder()
	studyHandler.Start(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Start() status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	cardID := strconv.FormatInt(card.ID, 10)
	r = authedRequest(user, http.MethodPut, "/api/decks/"+deck.PublicID+"/cards/"+cardID,
		`{"question":"Who directed Aliens?","answer":"James Cameron"}`)
	r.SetPathValue("deckID", deck.PublicID)
	r.SetPathValue("cardID", cardID)
	w = httptest.NewRecorder()
	flashcardHandler.UpdateCard(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("UpdateCard() status = %d: %s", w.Code, w.Body.String())
	}

	studyHandler.mu.Lock()
	active := studyHandler.sessions[user.ID]
	studyHandler.mu.Unlock()
	if active == nil {
		t.Fatal("study session gone after card edit")
	}

	current := active.session.Current()
	if current.Question != "Who directed Aliens?" || current.Answer != "James Cameron" {
		t.Errorf("session serves card %q / %q, want the edited text", current.Question, current.Answer)
	}
}

func TestUpdateCardLeavesOtherDecksAlone(t *testing.T) {
	db := openHandlerDB(t)
	user := createTestMember(t, db)

	deckService := service.NewDeckService(repository.NewDeckRepository(db))
	studyHandler := NewStudyHandler(deckService)
	flashcardHandler := NewFlashcardHandler(deckService, studyHandler)

	studied, err := deckService.CreateDeck(user.ID, "Studied")
	if err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	if _, err := deckService.CreateCard(studied.PublicID, user.ID, "Q", "A"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	other, err := deckService.CreateDeck(user.ID, "Other")
	if err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	otherCard, err := deckService.CreateCard(other.PublicID, user.ID, "Other Q", "Other A")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	r := authedRequest(user, http.MethodPost, "/api/decks/"+studied.PublicID+"/study/start", "")
	r.SetPathValue("deckID", studied.PublicID)
	w := httptest.NewRecorder()
	studyHandler.Start(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Start() status = %d: %s", w.Code, w.Body.String())
	}

	cardID := strconv.FormatInt(otherCard.ID, 10)
	r = authedRequest(user, http.MethodPut, "/api/decks/"+other.PublicID+"/cards/"+cardID,
		`{"question":"Edited Q","answer":"Edited A"}`)
	r.SetPathValue("deckID", other.PublicID)
	r.SetPathValue("cardID", cardID)
	w = httptest.NewRecorder()
	flashcardHandler.UpdateCard(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("UpdateCard() status = %d: %s", w.Code, w.Body.String())
	}

	studyHandler.mu.Lock()
	active := studyHandler.sessions[user.ID]
	studyHandler.mu.Unlock()
	if got := active.session.Current().Question; got != "Q" {
		t.Errorf("session card = %q after editing a different deck, want %q", got, "Q")
	}
}

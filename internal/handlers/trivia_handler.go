package handlers

import (
	"errors"
	"net/http"
	"sync"

	"flicksclub/internal/service"
	"flicksclub/internal/trivia"
	"flicksclub/internal/validation"
)

// TriviaHandler handles trivia game HTTP requests. Active games are
// held in memory per user; only started and completed rounds persist.
type TriviaHandler struct {
	triviaService *service.TriviaService

	mu    sync.Mutex
	games map[int64]*activeGame
}

type activeGame struct {
	sessionID int64
	questions []trivia.Question
	index     int
	score     int
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(triviaService *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		triviaService: triviaService,
		games:         make(map[int64]*activeGame),
	}
}

// playQuestionView is a question as shown mid-game. The correct answer
// stays server-side until the player commits.
type playQuestionView struct {
	Index        int      `json:"index"`
	Total        int      `json:"total"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

func newPlayQuestionView(game *activeGame) playQuestionView {
	q := game.questions[game.index]
	return playQuestionView{
		Index:        game.index,
		Total:        len(game.questions),
		QuestionText: q.Text,
		Options:      q.Options,
	}
}

// Start begins a new game, replacing any unfinished one
func (h *TriviaHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	questions, session, err := h.triviaService.StartGame(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			respondWithError(w, http.StatusNotFound, "No trivia questions available yet", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start trivia game", err)
		}
		return
	}

	game := &activeGame{
		sessionID: session.ID,
		questions: questions,
	}

	h.mu.Lock()
	h.games[user.ID] = game
	h.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, newPlayQuestionView(game))
}

// Question returns the current question of the active game
func (h *TriviaHandler) Question(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	h.mu.Lock()
	game, ok := h.games[user.ID]
	h.mu.Unlock()
	if !ok {
		respondWithError(w, http.StatusNotFound, "No active game", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, newPlayQuestionView(game))
}

// Answer scores the current question and advances the game
func (h *TriviaHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	h.mu.Lock()
	game, ok := h.games[user.ID]
	if !ok {
		h.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "No active game", "", nil)
		return
	}

	question := game.questions[game.index]
	correct := req.Answer == question.CorrectAnswer
	score := game.score
	if correct {
		score++
	}
	finished := game.index+1 >= len(game.questions)
	sessionID := game.sessionID
	h.mu.Unlock()

	// Persist the result before touching game state so a failed write
	// leaves the final answer retryable.
	if finished {
		if err := h.triviaService.CompleteGame(sessionID, score); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to record game result", err)
			return
		}
	}

	h.mu.Lock()
	game.score = score
	game.index++
	response := map[string]interface{}{
		"correct":       correct,
		"correctAnswer": question.CorrectAnswer,
		"score":         score,
		"finished":      finished,
	}
	if finished {
		delete(h.games, user.ID)
	} else {
		response["next"] = newPlayQuestionView(game)
	}
	h.mu.Unlock()

	respondWithJSON(w, http.StatusOK, response)
}

// History returns the player's recent completed and abandoned rounds
func (h *TriviaHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	sessions, err := h.triviaService.GetRecentSessions(user.ID, 20)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load game history", err)
		return
	}

	views := make([]gameHistoryView, 0, len(sessions))
	for i := range sessions {
		views = append(views, newGameHistoryView(&sessions[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// Leaderboard returns aggregate standings across all players
func (h *TriviaHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.triviaService.GetLeaderboard(10)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load leaderboard", err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// SubmitQuestion accepts a member-written question for moderation
func (h *TriviaHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		WatchedFlickID   int64  `json:"watchedFlickId"`
		QuestionText     string `json:"questionText"`
		CorrectAnswer    string `json:"correctAnswer"`
		IncorrectAnswer1 string `json:"incorrectAnswer1"`
		IncorrectAnswer2 string `json:"incorrectAnswer2"`
		IncorrectAnswer3 string `json:"incorrectAnswer3"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	question, err := h.triviaService.SubmitQuestion(user.ID, service.QuestionInput{
		WatchedFlickID:   req.WatchedFlickID,
		QuestionText:     req.QuestionText,
		CorrectAnswer:    req.CorrectAnswer,
		IncorrectAnswer1: req.IncorrectAnswer1,
		IncorrectAnswer2: req.IncorrectAnswer2,
		IncorrectAnswer3: req.IncorrectAnswer3,
	})
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrFlickNotFound):
			respondWithError(w, http.StatusNotFound, "Flick not found", "", nil)
		case errors.Is(err, service.ErrInappropriateContent):
			respondWithError(w, http.StatusBadRequest, "Question contains inappropriate language", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to submit question", err)
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, newQuestionView(question))
}

// MyQuestions lists the member's own submissions with approval state
func (h *TriviaHandler) MyQuestions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	questions, err := h.triviaService.GetQuestionsByUser(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load questions", err)
		return
	}

	views := make([]questionView, 0, len(questions))
	for i := range questions {
		views = append(views, newQuestionView(&questions[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

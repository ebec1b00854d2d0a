package handlers

import (
	"errors"
	"net/http"

	"flicksclub/internal/repository"
	"flicksclub/internal/service"
)

// AdminHandler handles moderation and member management. Every route
// here sits behind RequireAdmin.
type AdminHandler struct {
	triviaService *service.TriviaService
	emailService  *service.EmailService
	userRepo      *repository.UserRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(triviaService *service.TriviaService, emailService *service.EmailService, userRepo *repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		triviaService: triviaService,
		emailService:  emailService,
		userRepo:      userRepo,
	}
}

// PendingQuestions lists submitted questions awaiting moderation
func (h *AdminHandler) PendingQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.triviaService.GetPendingQuestions()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list pending questions", err)
		return
	}

	views := make([]questionView, 0, len(questions))
	for i := range questions {
		views = append(views, newQuestionView(&questions[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// ApproveQuestion accepts a question into the trivia pool and notifies
// the author.
func (h *AdminHandler) ApproveQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid question ID", "", nil)
		return
	}

	if err := h.triviaService.ApproveQuestion(r.Context(), h.emailService, h.userRepo, id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to approve question", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RejectQuestion discards a submitted question
func (h *AdminHandler) RejectQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid question ID", "", nil)
		return
	}

	if err := h.triviaService.RejectQuestion(id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to reject question", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListUsers returns every member account
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.GetAllUsers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list users", err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

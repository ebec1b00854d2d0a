package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/trivia"
	"flicksclub/internal/validation"
)

var (
	ErrNoQuestionsAvailable = errors.New("no trivia questions available")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInappropriateContent = errors.New("submission contains inappropriate language")
)

// QuestionInput carries the writable fields of a user-submitted question
type QuestionInput struct {
	WatchedFlickID   int64
	QuestionText     string
	CorrectAnswer    string
	IncorrectAnswer1 string
	IncorrectAnswer2 string
	IncorrectAnswer3 string
}

// TriviaService handles trivia pool building, play history and the
// user-submitted question pipeline. Active games live in the handler
// layer; only started and completed rounds touch the database.
type TriviaService struct {
	flickRepo    *repository.FlickRepository
	questionRepo *repository.QuestionRepository
	triviaRepo   *repository.TriviaRepository
	db           *database.DB
	generator    *trivia.Generator
}

// NewTriviaService creates a new trivia service
func NewTriviaService(
	flickRepo *repository.FlickRepository,
	questionRepo *repository.QuestionRepository,
	triviaRepo *repository.TriviaRepository,
	db *database.DB,
	generator *trivia.Generator,
) *TriviaService {
	if generator == nil {
		generator = trivia.NewGenerator(nil)
	}
	return &TriviaService{
		flickRepo:    flickRepo,
		questionRepo: questionRepo,
		triviaRepo:   triviaRepo,
		db:           db,
		generator:    generator,
	}
}

// StartGame builds a fresh question pool and records the round start
func (s *TriviaService) StartGame(userID int64) ([]trivia.Question, *models.TriviaSession, error) {
	flicks, err := s.flickRepo.GetAllFlicks()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load watch log: %w", err)
	}

	approved, err := s.questionRepo.GetApprovedQuestions()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load approved questions: %w", err)
	}

	pool := s.generator.BuildPool(flicks, approved, trivia.DefaultGeneratedCount, trivia.DefaultSessionSize)
	if len(pool) == 0 {
		return nil, nil, ErrNoQuestionsAvailable
	}

	session, err := s.triviaRepo.CreateSession(userID, len(pool))
	if err != nil {
		return nil, nil, err
	}

	return pool, session, nil
}

// CompleteGame stores the final score of a finished round
func (s *TriviaService) CompleteGame(sessionID int64, score int) error {
	return s.triviaRepo.CompleteSession(sessionID, score)
}

// GetRecentSessions returns a user's most recent rounds
func (s *TriviaService) GetRecentSessions(userID int64, limit int) ([]models.TriviaSession, error) {
	return s.triviaRepo.GetSessionsByUser(userID, limit)
}

// GetLeaderboard returns the completed-round leaderboard
func (s *TriviaService) GetLeaderboard(limit int) ([]repository.LeaderboardEntry, error) {
	return s.triviaRepo.GetLeaderboard(limit)
}

// SubmitQuestion validates, profanity-screens and stores a member's
// question. It lands unapproved and never enters a game until an admin
// clears it.
func (s *TriviaService) SubmitQuestion(userID int64, input QuestionInput) (*models.UserQuestion, error) {
	if err := validation.ValidateRequiredText("question_text", input.QuestionText); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("correct_answer", input.CorrectAnswer); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("incorrect_answer_1", input.IncorrectAnswer1); err != nil {
		return nil, err
	}

	flick, err := s.flickRepo.GetFlickByID(input.WatchedFlickID)
	if err != nil {
		return nil, err
	}
	if flick == nil {
		return nil, ErrFlickNotFound
	}

	combined := strings.Join([]string{
		input.QuestionText, input.CorrectAnswer,
		input.IncorrectAnswer1, input.IncorrectAnswer2, input.IncorrectAnswer3,
	}, " ")
	flagged, err := s.db.ContainsProfanity(combined)
	if err != nil {
		return nil, fmt.Errorf("failed to screen submission: %w", err)
	}
	if flagged {
		return nil, ErrInappropriateContent
	}

	question := &models.UserQuestion{
		WatchedFlickID: input.WatchedFlickID,
		UserID:         userID,
		QuestionText:   input.QuestionText,
		CorrectAnswer:  input.CorrectAnswer,
	}
	if input.IncorrectAnswer1 != "" {
		question.IncorrectAnswer1 = &input.IncorrectAnswer1
	}
	if input.IncorrectAnswer2 != "" {
		question.IncorrectAnswer2 = &input.IncorrectAnswer2
	}
	if input.IncorrectAnswer3 != "" {
		question.IncorrectAnswer3 = &input.IncorrectAnswer3
	}

	return s.questionRepo.CreateQuestion(question)
}

// GetQuestionsByUser returns everything a member has submitted
func (s *TriviaService) GetQuestionsByUser(userID int64) ([]models.UserQuestion, error) {
	return s.questionRepo.GetQuestionsByUser(userID)
}

// GetPendingQuestions returns questions awaiting moderation
func (s *TriviaService) GetPendingQuestions() ([]models.UserQuestion, error) {
	return s.questionRepo.GetPendingQuestions()
}

// ApproveQuestion clears a question for gameplay and notifies the
// submitter when email is configured.
func (s *TriviaService) ApproveQuestion(ctx context.Context, emailService *EmailService, userRepo *repository.UserRepository, id int64) error {
	question, err := s.questionRepo.GetQuestionByID(id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	if err := s.questionRepo.ApproveQuestion(id); err != nil {
		return fmt.Errorf("failed to approve question: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		submitter, err := userRepo.GetUserByID(question.UserID)
		if err == nil && submitter != nil {
			if err := emailService.SendQuestionApprovedEmail(ctx, submitter.Email, submitter.Name, question.QuestionText); err != nil {
				log.Printf("Warning: failed to send approval email for question %d: %v", id, err)
			}
		}
	}

	return nil
}

// RejectQuestion removes a pending question
func (s *TriviaService) RejectQuestion(id int64) error {
	question, err := s.questionRepo.GetQuestionByID(id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	return s.questionRepo.DeleteQuestion(id)
}

package service

import (
	"errors"
	"fmt"
	"time"

	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/validation"
)

var (
	ErrFlickNotFound      = errors.New("flick not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrNotOwner           = errors.New("not the owner")
)

// FlickInput carries the writable fields of a watch-log entry
type FlickInput struct {
	WatchedOn      string
	Title          string
	RatingMegan    *float64
	RatingAlex     *float64
	RatingTim      *float64
	Description    string
	CommentMegan   string
	CommentAlex    string
	CommentTim     string
	PosterFilename string
}

// FlickService handles watch-log and suggestion business logic. The
// watch log is shared: every member can edit every entry.
type FlickService struct {
	flickRepo      *repository.FlickRepository
	suggestionRepo *repository.SuggestionRepository
}

// NewFlickService creates a new flick service
func NewFlickService(flickRepo *repository.FlickRepository, suggestionRepo *repository.SuggestionRepository) *FlickService {
	return &FlickService{
		flickRepo:      flickRepo,
		suggestionRepo: suggestionRepo,
	}
}

// GetAllFlicks returns the whole watch log, most recent watch first
func (s *FlickService) GetAllFlicks() ([]models.WatchedFlick, error) {
	return s.flickRepo.GetAllFlicks()
}

// GetFlick returns one watch-log entry
func (s *FlickService) GetFlick(id int64) (*models.WatchedFlick, error) {
	flick, err := s.flickRepo.GetFlickByID(id)
	if err != nil {
		return nil, err
	}
	if flick == nil {
		return nil, ErrFlickNotFound
	}
	return flick, nil
}

// CreateFlick validates and records a new watch-log entry
func (s *FlickService) CreateFlick(input FlickInput) (*models.WatchedFlick, error) {
	flick, err := s.validateFlickInput(input)
	if err != nil {
		return nil, err
	}
	return s.flickRepo.CreateFlick(flick)
}

// UpdateFlick validates and replaces a watch-log entry
func (s *FlickService) UpdateFlick(id int64, input FlickInput) (*models.WatchedFlick, error) {
	existing, err := s.flickRepo.GetFlickByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrFlickNotFound
	}

	flick, err := s.validateFlickInput(input)
	if err != nil {
		return nil, err
	}
	flick.ID = id

	if err := s.flickRepo.UpdateFlick(flick); err != nil {
		return nil, fmt.Errorf("failed to update flick: %w", err)
	}
	return s.flickRepo.GetFlickByID(id)
}

// DeleteFlick removes a watch-log entry
func (s *FlickService) DeleteFlick(id int64) error {
	existing, err := s.flickRepo.GetFlickByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFlickNotFound
	}
	return s.flickRepo.DeleteFlick(id)
}

func (s *FlickService) validateFlickInput(input FlickInput) (*models.WatchedFlick, error) {
	if err := validation.ValidateRequiredText("title", input.Title); err != nil {
		return nil, err
	}

	watchedOn, err := validation.ValidateWatchDate(input.WatchedOn)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateRating("rating_megan", input.RatingMegan); err != nil {
		return nil, err
	}
	if err := validation.ValidateRating("rating_alex", input.RatingAlex); err != nil {
		return nil, err
	}
	if err := validation.ValidateRating("rating_tim", input.RatingTim); err != nil {
		return nil, err
	}

	return &models.WatchedFlick{
		WatchedOn:      watchedOn,
		Title:          input.Title,
		RatingMegan:    input.RatingMegan,
		RatingAlex:     input.RatingAlex,
		RatingTim:      input.RatingTim,
		Description:    input.Description,
		CommentMegan:   input.CommentMegan,
		CommentAlex:    input.CommentAlex,
		CommentTim:     input.CommentTim,
		PosterFilename: input.PosterFilename,
	}, nil
}

// GetAllSuggestions returns all movie suggestions, newest first
func (s *FlickService) GetAllSuggestions() ([]models.SuggestedFlick, error) {
	return s.suggestionRepo.GetAllSuggestions()
}

// CreateSuggestion validates and records a movie suggestion
func (s *FlickService) CreateSuggestion(title, imdbLink string, userID int64) (*models.SuggestedFlick, error) {
	if err := validation.ValidateRequiredText("title", title); err != nil {
		return nil, err
	}
	if err := validation.ValidateLink("imdb_link", imdbLink); err != nil {
		return nil, err
	}
	return s.suggestionRepo.CreateSuggestion(title, imdbLink, userID)
}

// DeleteSuggestion removes a suggestion; only the submitter may do so
func (s *FlickService) DeleteSuggestion(id, userID int64) error {
	suggestion, err := s.suggestionRepo.GetSuggestionByID(id)
	if err != nil {
		return err
	}
	if suggestion == nil {
		return ErrSuggestionNotFound
	}
	if suggestion.SuggestedByUserID != userID {
		return ErrNotOwner
	}
	return s.suggestionRepo.DeleteSuggestion(id)
}

// MarkSuggestionWatched promotes a suggestion into the watch log and
// removes it from the suggestion list.
func (s *FlickService) MarkSuggestionWatched(id int64, watchedOn time.Time) (*models.WatchedFlick, error) {
	suggestion, err := s.suggestionRepo.GetSuggestionByID(id)
	if err != nil {
		return nil, err
	}
	if suggestion == nil {
		return nil, ErrSuggestionNotFound
	}

	flick, err := s.flickRepo.CreateFlick(&models.WatchedFlick{
		WatchedOn: watchedOn,
		Title:     suggestion.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote suggestion: %w", err)
	}

	if err := s.suggestionRepo.DeleteSuggestion(id); err != nil {
		return nil, fmt.Errorf("failed to remove promoted suggestion: %w", err)
	}

	return flick, nil
}

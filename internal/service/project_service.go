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
	ErrProjectNotFound   = errors.New("project not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
)

// TimeEntryInput carries the writable fields of a time entry
type TimeEntryInput struct {
	ProjectID   *int64
	StartTime   time.Time
	EndTime     time.Time
	Description string
}

// ProjectService handles project and time-tracking business logic.
// Projects and entries are owner-scoped.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProject validates and creates a project
func (s *ProjectService) CreateProject(userID int64, name, clientName string) (*models.Project, error) {
	if err := validation.ValidateRequiredText("name", name); err != nil {
		return nil, err
	}
	return s.projectRepo.CreateProject(userID, name, clientName)
}

// GetProjects returns all projects owned by a user
func (s *ProjectService) GetProjects(userID int64) ([]models.Project, error) {
	return s.projectRepo.GetProjectsByUser(userID)
}

// GetProject returns one project if the caller owns it
func (s *ProjectService) GetProject(id, userID int64) (*models.Project, error) {
	project, err := s.projectRepo.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// UpdateProject renames a project the caller owns
func (s *ProjectService) UpdateProject(id, userID int64, name, clientName string) (*models.Project, error) {
	if _, err := s.GetProject(id, userID); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText("name", name); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateProject(id, name, clientName); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.projectRepo.GetProjectByID(id)
}

// DeleteProject removes a project the caller owns; its time entries
// survive without a project reference.
func (s *ProjectService) DeleteProject(id, userID int64) error {
	if _, err := s.GetProject(id, userID); err != nil {
		return err
	}
	return s.projectRepo.DeleteProject(id)
}

// CreateTimeEntry validates and records a block of tracked time
func (s *ProjectService) CreateTimeEntry(userID int64, input TimeEntryInput) (*models.TimeEntry, error) {
	if err := s.validateTimeEntry(userID, input); err != nil {
		return nil, err
	}

	return s.projectRepo.CreateTimeEntry(&models.TimeEntry{
		UserID:      userID,
		ProjectID:   input.ProjectID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Description: input.Description,
	})
}

// GetTimeEntries returns a user's tracked time, most recent first
func (s *ProjectService) GetTimeEntries(userID int64) ([]models.TimeEntry, error) {
	return s.projectRepo.GetTimeEntriesByUser(userID)
}

// UpdateTimeEntry edits a time entry the caller owns
func (s *ProjectService) UpdateTimeEntry(id, userID int64, input TimeEntryInput) (*models.TimeEntry, error) {
	entry, err := s.projectRepo.GetTimeEntryByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID {
		return nil, ErrTimeEntryNotFound
	}

	if err := s.validateTimeEntry(userID, input); err != nil {
		return nil, err
	}

	entry.ProjectID = input.ProjectID
	entry.StartTime = input.StartTime
	entry.EndTime = input.EndTime
	entry.Description = input.Description

	if err := s.projectRepo.UpdateTimeEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}
	return s.projectRepo.GetTimeEntryByID(id)
}

// DeleteTimeEntry removes a time entry the caller owns
func (s *ProjectService) DeleteTimeEntry(id, userID int64) error {
	entry, err := s.projectRepo.GetTimeEntryByID(id)
	if err != nil {
		return err
	}
	if entry == nil || entry.UserID != userID {
		return ErrTimeEntryNotFound
	}
	return s.projectRepo.DeleteTimeEntry(id)
}

func (s *ProjectService) validateTimeEntry(userID int64, input TimeEntryInput) error {
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return errors.New("start_time and end_time are required")
	}
	if !input.EndTime.After(input.StartTime) {
		return ErrInvalidTimeRange
	}
	if input.ProjectID != nil {
		if _, err := s.GetProject(*input.ProjectID, userID); err != nil {
			return err
		}
	}
	return nil
}

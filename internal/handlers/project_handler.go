package handlers

import (
	"errors"
	"net/http"
	"time"

	"flicksclub/internal/service"
	"flicksclub/internal/validation"
)

// ProjectHandler handles project and time-entry HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns the member's projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	projects, err := h.projectService.GetProjects(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list projects", err)
		return
	}

	views := make([]projectView, 0, len(projects))
	for i := range projects {
		views = append(views, newProjectView(&projects[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// CreateProject adds a project
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req struct {
		Name       string `json:"name"`
		ClientName string `json:"clientName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	project, err := h.projectService.CreateProject(user.ID, req.Name, req.ClientName)
	if err != nil {
		respondProjectError(w, err, "Failed to create project")
		return
	}
	respondWithJSON(w, http.StatusCreated, newProjectView(project))
}

// UpdateProject edits a project's name or client
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID", "", nil)
		return
	}

	var req struct {
		Name       string `json:"name"`
		ClientName string `json:"clientName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	project, err := h.projectService.UpdateProject(id, user.ID, req.Name, req.ClientName)
	if err != nil {
		respondProjectError(w, err, "Failed to update project")
		return
	}
	respondWithJSON(w, http.StatusOK, newProjectView(project))
}

// DeleteProject removes a project, detaching its time entries
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID", "", nil)
		return
	}

	if err := h.projectService.DeleteProject(id, user.ID); err != nil {
		respondProjectError(w, err, "Failed to delete project")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type timeEntryRequest struct {
	ProjectID   *int64 `json:"projectId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

func (req timeEntryRequest) toInput() (service.TimeEntryInput, error) {
	input := service.TimeEntryInput{
		ProjectID:   req.ProjectID,
		Description: req.Description,
	}

	if req.StartTime != "" {
		start, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return input, errors.New("startTime must be RFC 3339")
		}
		input.StartTime = start
	}
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return input, errors.New("endTime must be RFC 3339")
		}
		input.EndTime = end
	}
	return input, nil
}

// ListTimeEntries returns the member's time entries, newest first
func (h *ProjectHandler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	entries, err := h.projectService.GetTimeEntries(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to list time entries", err)
		return
	}

	views := make([]timeEntryView, 0, len(entries))
	for i := range entries {
		views = append(views, newTimeEntryView(&entries[i]))
	}
	respondWithJSON(w, http.StatusOK, views)
}

// CreateTimeEntry logs a block of tracked time
func (h *ProjectHandler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req timeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	entry, err := h.projectService.CreateTimeEntry(user.ID, input)
	if err != nil {
		respondProjectError(w, err, "Failed to create time entry")
		return
	}
	respondWithJSON(w, http.StatusCreated, newTimeEntryView(entry))
}

// UpdateTimeEntry edits a tracked block
func (h *ProjectHandler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time entry ID", "", nil)
		return
	}

	var req timeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	entry, err := h.projectService.UpdateTimeEntry(id, user.ID, input)
	if err != nil {
		respondProjectError(w, err, "Failed to update time entry")
		return
	}
	respondWithJSON(w, http.StatusOK, newTimeEntryView(entry))
}

// DeleteTimeEntry removes a tracked block
func (h *ProjectHandler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time entry ID", "", nil)
		return
	}

	if err := h.projectService.DeleteTimeEntry(id, user.ID); err != nil {
		respondProjectError(w, err, "Failed to delete time entry")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func respondProjectError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, "Project not found", "", nil)
	case errors.Is(err, service.ErrTimeEntryNotFound):
		respondWithError(w, http.StatusNotFound, "Time entry not found", "", nil)
	case errors.Is(err, service.ErrInvalidTimeRange):
		respondWithError(w, http.StatusBadRequest, "End time must be after start time", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

package repository

import (
	"database/sql"
	"fmt"

	"flicksclub/internal/database"
	"flicksclub/internal/models"
)

// ProjectRepository handles database operations for projects and time entries
type ProjectRepository struct {
	db database.DBTX
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db database.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject inserts a new project
func (r *ProjectRepository) CreateProject(userID int64, name, clientName string) (*models.Project, error) {
	query := `
		INSERT INTO projects (user_id, name, client_name)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, name, nullString(clientName))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return r.GetProjectByID(id)
}

// GetProjectByID retrieves one project
func (r *ProjectRepository) GetProjectByID(id int64) (*models.Project, error) {
	query := `
		SELECT id, user_id, name, COALESCE(client_name, ''), created_at
		FROM projects
		WHERE id = ?
	`
	project := &models.Project{}
	err := r.db.QueryRow(query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.ClientName,
		&project.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// GetProjectsByUser retrieves all projects owned by a user
func (r *ProjectRepository) GetProjectsByUser(userID int64) ([]models.Project, error) {
	query := `
		SELECT id, user_id, name, COALESCE(client_name, ''), created_at
		FROM projects
		WHERE user_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.ClientName, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject renames a project and replaces its client name
func (r *ProjectRepository) UpdateProject(id int64, name, clientName string) error {
	query := `
		UPDATE projects
		SET name = ?, client_name = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, nullString(clientName), id)
	return err
}

// DeleteProject removes a project; its time entries keep their rows
// with the project reference cleared.
func (r *ProjectRepository) DeleteProject(id int64) error {
	_, err := r.db.Exec("UPDATE time_entries SET project_id = NULL WHERE project_id = ?", id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

const timeEntryColumns = `t.id, t.user_id, t.project_id, COALESCE(p.name, ''),
	       t.start_time, t.end_time, COALESCE(t.description, ''), t.created_at`

// CreateTimeEntry records a block of tracked time
func (r *ProjectRepository) CreateTimeEntry(e *models.TimeEntry) (*models.TimeEntry, error) {
	query := `
		INSERT INTO time_entries (user_id, project_id, start_time, end_time, description)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.UserID, nullInt64(e.ProjectID), e.StartTime, e.EndTime, nullString(e.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return r.GetTimeEntryByID(id)
}

// GetTimeEntryByID retrieves one time entry
func (r *ProjectRepository) GetTimeEntryByID(id int64) (*models.TimeEntry, error) {
	query := "SELECT " + timeEntryColumns + `
		FROM time_entries t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.id = ?
	`
	entry, err := scanTimeEntry(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// GetTimeEntriesByUser retrieves a user's tracked time, most recent first
func (r *ProjectRepository) GetTimeEntriesByUser(userID int64) ([]models.TimeEntry, error) {
	query := "SELECT " + timeEntryColumns + `
		FROM time_entries t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.user_id = ?
		ORDER BY t.start_time DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// UpdateTimeEntry replaces the mutable fields of a time entry
func (r *ProjectRepository) UpdateTimeEntry(e *models.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET project_id = ?, start_time = ?, end_time = ?, description = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		nullInt64(e.ProjectID), e.StartTime, e.EndTime, nullString(e.Description), e.ID,
	)
	return err
}

// DeleteTimeEntry removes a time entry
func (r *ProjectRepository) DeleteTimeEntry(id int64) error {
	_, err := r.db.Exec("DELETE FROM time_entries WHERE id = ?", id)
	return err
}

func scanTimeEntry(row *sql.Row) (*models.TimeEntry, error) {
	return scanTimeEntryRow(row)
}

func scanTimeEntryRow(row rowScanner) (*models.TimeEntry, error) {
	e := &models.TimeEntry{}
	var projectID sql.NullInt64

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&projectID,
		&e.ProjectName,
		&e.StartTime,
		&e.EndTime,
		&e.Description,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		e.ProjectID = &projectID.Int64
	}

	return e, nil
}

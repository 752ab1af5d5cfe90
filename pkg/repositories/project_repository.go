package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/database"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Insert(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListForMember(ctx context.Context, userID string) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	// SetDerived unconditionally overwrites the derived progress/status pair.
	// Writes against an unknown project id are silently ignored.
	SetDerived(ctx context.Context, id string, progress int, status string) error
	// AddMember adds userID to the member set if not already present.
	AddMember(ctx context.Context, projectID, userID string) error
	// RemoveMemberEverywhere pulls userID out of every project's member set.
	RemoveMemberEverywhere(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name, description, members, status, progress, created_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Members,
		&project.Status,
		&project.Progress,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if project.Members == nil {
		project.Members = []string{}
	}
	return &project, nil
}

func (r *projectRepository) Insert(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, description, members, status, progress, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Members,
		project.Status,
		project.Progress,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRow(ctx, query, id))
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	return r.queryProjects(ctx, query)
}

func (r *projectRepository) ListForMember(ctx context.Context, userID string) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE $1 = ANY(members) ORDER BY created_at`
	return r.queryProjects(ctx, query, userID)
}

func (r *projectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, members = $3, status = $4, progress = $5
		WHERE id = $6`

	result, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Members,
		project.Status,
		project.Progress,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *projectRepository) SetDerived(ctx context.Context, id string, progress int, status string) error {
	query := `UPDATE projects SET progress = $1, status = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, progress, status, id)
	if err != nil {
		return fmt.Errorf("failed to update project progress: %w", err)
	}

	return nil
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	query := `
		UPDATE projects
		SET members = array_append(members, $1)
		WHERE id = $2 AND NOT ($1 = ANY(members))`

	_, err := r.db.Exec(ctx, query, userID, projectID)
	if err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}

	return nil
}

func (r *projectRepository) RemoveMemberEverywhere(ctx context.Context, userID string) error {
	query := `
		UPDATE projects
		SET members = array_remove(members, $1)
		WHERE $1 = ANY(members)`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}

	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)

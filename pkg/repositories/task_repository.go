package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/database"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
)

// TaskFilter narrows a task listing. Zero-value fields are not applied.
type TaskFilter struct {
	ProjectID  string
	AssigneeID string
}

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Insert(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*models.Task, error)
	// ApplyPatch performs a field-level update of the mutable task fields.
	// Returns apperrors.ErrNotFound when the id matches nothing.
	ApplyPatch(ctx context.Context, id string, patch *models.TaskPatch) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
	DeleteByAssignee(ctx context.Context, assigneeID string) error
}

// taskRepository implements TaskRepository using PostgreSQL.
type taskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *database.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, project_id, assignee_id, status, priority, COALESCE(due_date, ''), created_at, subtasks`

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	var subtasks []byte
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.ProjectID,
		&task.AssigneeID,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&subtasks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &task.Subtasks); err != nil {
			return nil, fmt.Errorf("failed to decode subtasks: %w", err)
		}
	}
	return &task, nil
}

func encodeSubtasks(subtasks []models.Subtask) ([]byte, error) {
	if subtasks == nil {
		return nil, nil
	}
	data, err := json.Marshal(subtasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtasks: %w", err)
	}
	return data, nil
}

func (r *taskRepository) Insert(ctx context.Context, task *models.Task) error {
	subtasks, err := encodeSubtasks(task.Subtasks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, project_id, assignee_id, status, priority, due_date, created_at, subtasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`

	_, err = r.db.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.ProjectID,
		task.AssigneeID,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		subtasks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.db.QueryRow(ctx, query, id))
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.List(ctx, TaskFilter{ProjectID: projectID})
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var conds []string
	var args []any

	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		conds = append(conds, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		conds = append(conds, fmt.Sprintf("assignee_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) ApplyPatch(ctx context.Context, id string, patch *models.TaskPatch) error {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.ProjectID != nil {
		set("project_id", *patch.ProjectID)
	}
	if patch.AssigneeID != nil {
		set("assignee_id", *patch.AssigneeID)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.Priority != nil {
		set("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		args = append(args, *patch.DueDate)
		sets = append(sets, fmt.Sprintf("due_date = NULLIF($%d, '')", len(args)))
	}
	if patch.Subtasks != nil {
		subtasks, err := encodeSubtasks(*patch.Subtasks)
		if err != nil {
			return err
		}
		set("subtasks", subtasks)
	}

	if len(sets) == 0 {
		// Nothing to change; still report not-found for unknown ids.
		_, err := r.GetByID(ctx, id)
		return err
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *taskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}
	return nil
}

func (r *taskRepository) DeleteByAssignee(ctx context.Context, assigneeID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE assignee_id = $1`, assigneeID)
	if err != nil {
		return fmt.Errorf("failed to delete assignee tasks: %w", err)
	}
	return nil
}

// Ensure taskRepository implements TaskRepository at compile time.
var _ TaskRepository = (*taskRepository)(nil)

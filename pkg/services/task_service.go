package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/ids"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// CreateTaskRequest carries the fields for a new task. Status and priority
// default to "todo" and "medium" when unset.
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ProjectID   string           `json:"projectId"`
	AssigneeID  string           `json:"assigneeId"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	DueDate     string           `json:"dueDate"`
	Subtasks    []models.Subtask `json:"subtasks"`
}

// TaskListQuery mirrors the task listing filter matrix: admins may list
// everything, everyone else needs at least one of the id filters.
type TaskListQuery struct {
	ProjectID  string
	UserID     string
	AssigneeID string
	IsAdmin    bool
}

// TaskService owns the task lifecycle and the side-effect chain that keeps
// derived project state and notifications in line with every task mutation.
type TaskService interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, id string, patch *models.TaskPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query TaskListQuery) ([]*models.Task, error)
}

type taskService struct {
	tasks         repositories.TaskRepository
	projects      repositories.ProjectRepository
	notifications NotificationService
	progress      ProgressService
	logger        *zap.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	tasks repositories.TaskRepository,
	projects repositories.ProjectRepository,
	notifications NotificationService,
	progress ProgressService,
	logger *zap.Logger,
) TaskService {
	return &taskService{
		tasks:         tasks,
		projects:      projects,
		notifications: notifications,
		progress:      progress,
		logger:        logger.Named("task-service"),
	}
}

var _ TaskService = (*taskService)(nil)

// Create persists the task and then runs the assignment side-effect chain:
// member union, assignment notification, progress recomputation. The member
// union and notification steps are best-effort and only logged; there is no
// rollback once the insert has committed. The aggregator runs last so
// project stats reflect the just-created task, and its failure propagates
// to the caller as a plain error.
func (s *taskService) Create(ctx context.Context, req *CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		ID:          ids.New(ids.PrefixTask),
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
		Subtasks:    req.Subtasks,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	// Project name for the notification message; fall back to the raw id
	// when the lookup fails.
	projectName := task.ProjectID
	project, err := s.projects.GetByID(ctx, task.ProjectID)
	switch {
	case err == nil:
		projectName = project.Name
		if !project.HasMember(task.AssigneeID) {
			if err := s.projects.AddMember(ctx, task.ProjectID, task.AssigneeID); err != nil {
				s.logger.Error("failed to add assignee to project members",
					zap.String("project_id", task.ProjectID),
					zap.String("assignee_id", task.AssigneeID),
					zap.Error(err))
			} else {
				s.logger.Info("assignee added to project members",
					zap.String("project_id", task.ProjectID),
					zap.String("assignee_id", task.AssigneeID))
			}
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// Task references a project the store doesn't know. The chain
		// still notifies and recomputes; both are no-op safe.
	default:
		s.logger.Error("project lookup failed during task creation",
			zap.String("project_id", task.ProjectID),
			zap.Error(err))
	}

	message := fmt.Sprintf("You have been assigned a new task: %q in project %q.", task.Title, projectName)
	if _, err := s.notifications.Notify(ctx, task.AssigneeID, message, models.NotificationTaskAssigned); err != nil {
		s.logger.Error("failed to create assignment notification",
			zap.String("task_id", task.ID),
			zap.String("assignee_id", task.AssigneeID),
			zap.Error(err))
	}

	// An aggregator failure is indistinguishable from an insert failure to
	// the caller, even though the task row has already committed.
	if err := s.progress.Recompute(ctx, task.ProjectID); err != nil {
		return nil, fmt.Errorf("recompute project progress: %w", err)
	}

	return task, nil
}

// Update applies the patch and re-runs the aggregator for the task's
// project, covering status transitions. The id and creation timestamp are
// immutable; the handler rejects patches that name them before we get here.
func (s *taskService) Update(ctx context.Context, id string, patch *models.TaskPatch) error {
	if err := s.tasks.ApplyPatch(ctx, id, patch); err != nil {
		return err
	}

	// Re-read rather than trusting the patch: the projectId itself may have
	// been part of the update.
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload task after update: %w", err)
	}

	if task.ProjectID != "" {
		if err := s.progress.Recompute(ctx, task.ProjectID); err != nil {
			return fmt.Errorf("recompute project progress: %w", err)
		}
	}

	return nil
}

// Delete removes the task and re-runs the aggregator for its project. The
// projectId is captured before the delete; looking it up afterwards would
// find nothing and silently skip the recomputation.
func (s *taskService) Delete(ctx context.Context, id string) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	projectID := task.ProjectID

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	if projectID != "" {
		if err := s.progress.Recompute(ctx, projectID); err != nil {
			return fmt.Errorf("recompute project progress: %w", err)
		}
	}

	return nil
}

// List applies the filter matrix. Non-admin queries must name at least one
// of projectId, userId, or assigneeId.
func (s *taskService) List(ctx context.Context, query TaskListQuery) ([]*models.Task, error) {
	filter := repositories.TaskFilter{ProjectID: query.ProjectID}

	switch {
	case query.IsAdmin:
		filter.AssigneeID = query.AssigneeID
	case query.ProjectID != "" && query.UserID != "":
		filter.AssigneeID = query.UserID
	case query.ProjectID != "":
		// Project overview: all tasks in the project.
	case query.UserID != "":
		filter.AssigneeID = query.UserID
	case query.AssigneeID != "":
		filter.AssigneeID = query.AssigneeID
	default:
		return nil, apperrors.ErrFilterRequired
	}

	return s.tasks.List(ctx, filter)
}

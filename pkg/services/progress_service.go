package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// ProgressService recomputes a project's completion percentage and status
// from its task set. It runs after every task create/update/delete that
// touches the project.
type ProgressService interface {
	// Recompute derives progress and status from the project's tasks and
	// writes both fields back unconditionally. Safe to call for unknown
	// project ids (the write is ignored by the store).
	Recompute(ctx context.Context, projectID string) error
}

type progressService struct {
	tasks    repositories.TaskRepository
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(tasks repositories.TaskRepository, projects repositories.ProjectRepository, logger *zap.Logger) ProgressService {
	return &progressService{
		tasks:    tasks,
		projects: projects,
		logger:   logger.Named("progress-service"),
	}
}

var _ ProgressService = (*progressService)(nil)

func (s *progressService) Recompute(ctx context.Context, projectID string) error {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list project tasks: %w", err)
	}

	progress, status := WeightedProgress(tasks)

	if err := s.projects.SetDerived(ctx, projectID, progress, status); err != nil {
		return fmt.Errorf("write project progress: %w", err)
	}

	s.logger.Debug("project progress updated",
		zap.String("project_id", projectID),
		zap.Int("progress", progress),
		zap.String("status", status))

	return nil
}

// WeightedProgress computes the completion metric for a task set: done tasks
// contribute 100%, in-progress 50%, todo 0%, averaged over the total count.
// Rounding is half-up (math.Round), so 62.5 rounds to 63. An empty set is
// 0/"active"; the status is "completed" exactly when every task is done.
// Status is never sticky: reopening a done task or adding a new one flips a
// completed project back to active on the next recomputation.
func WeightedProgress(tasks []*models.Task) (progress int, status string) {
	total := len(tasks)
	if total == 0 {
		return 0, models.ProjectStatusActive
	}

	var done, inProgress int
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusDone:
			done++
		case models.TaskStatusInProgress:
			inProgress++
		}
	}

	progress = int(math.Round(float64(done*100+inProgress*50) / float64(total)))

	status = models.ProjectStatusActive
	if done == total {
		status = models.ProjectStatusCompleted
	}

	return progress, status
}

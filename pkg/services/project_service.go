package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/ids"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/realtime"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// CreateProjectRequest carries the fields for a new project. Derived fields
// start at 0/active regardless of what the caller sends later; only the
// initial pair is client-authored.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
}

// UpdateProjectRequest carries the replacement fields for a project update.
type UpdateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
}

// ProjectService owns the project lifecycle, its assignment notifications,
// and the lifecycle broadcasts.
type ProjectService interface {
	Create(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)
	// List returns every project for admins, otherwise the projects the
	// user is a member of.
	List(ctx context.Context, userID string, isAdmin bool) ([]*models.Project, error)
	Update(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error)
	// Delete removes the project and cascades to delete all its tasks.
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	projects      repositories.ProjectRepository
	tasks         repositories.TaskRepository
	notifications NotificationService
	broadcaster   Broadcaster
	logger        *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projects repositories.ProjectRepository,
	tasks repositories.TaskRepository,
	notifications NotificationService,
	broadcaster Broadcaster,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		projects:      projects,
		tasks:         tasks,
		notifications: notifications,
		broadcaster:   broadcaster,
		logger:        logger.Named("project-service"),
	}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		ID:          ids.New(ids.PrefixProject),
		Name:        req.Name,
		Description: req.Description,
		Members:     dedupe(req.Members),
		Status:      req.Status,
		Progress:    req.Progress,
		CreatedAt:   time.Now().UTC(),
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	s.broadcaster.Broadcast(realtime.Event{Type: realtime.EventProjectCreated, Data: project})

	message := fmt.Sprintf("You have been added to a new project: %q.", project.Name)
	for _, memberID := range project.Members {
		if _, err := s.notifications.Notify(ctx, memberID, message, models.NotificationProjectAssigned); err != nil {
			s.logger.Error("failed to create project assignment notification",
				zap.String("project_id", project.ID),
				zap.String("member_id", memberID),
				zap.Error(err))
		}
	}

	return project, nil
}

func (s *projectService) List(ctx context.Context, userID string, isAdmin bool) ([]*models.Project, error) {
	if isAdmin {
		return s.projects.List(ctx)
	}
	return s.projects.ListForMember(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Members:     dedupe(req.Members),
		Status:      req.Status,
		Progress:    req.Progress,
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(realtime.Event{Type: realtime.EventProjectUpdated, Data: project})

	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.DeleteByProject(ctx, id); err != nil {
		s.logger.Error("failed to delete project tasks", zap.String("project_id", id), zap.Error(err))
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type: realtime.EventProjectDeleted,
		Data: map[string]string{"id": id},
	})

	return nil
}

// dedupe suppresses duplicate member ids while keeping first-seen order.
func dedupe(members []string) []string {
	seen := make(map[string]struct{}, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

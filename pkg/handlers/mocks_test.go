package handlers

import (
	"context"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

// Configurable service mocks. Set the function fields to control behavior;
// nil fields return zero values.

type mockTaskService struct {
	CreateFunc func(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error)
	UpdateFunc func(ctx context.Context, id string, patch *models.TaskPatch) error
	DeleteFunc func(ctx context.Context, id string) error
	ListFunc   func(ctx context.Context, query services.TaskListQuery) ([]*models.Task, error)
}

func (m *mockTaskService) Create(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) Update(ctx context.Context, id string, patch *models.TaskPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockTaskService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskService) List(ctx context.Context, query services.TaskListQuery) ([]*models.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return nil, nil
}

type mockUserService struct {
	RegisterFunc         func(ctx context.Context, req *services.RegisterRequest) (*models.User, error)
	CheckEmailFunc       func(ctx context.Context, email string) (*services.EmailCheck, error)
	RoleByEmailFunc      func(ctx context.Context, email string) (string, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	ListNonAdminFunc     func(ctx context.Context) ([]*models.User, error)
	AdminEmailFunc       func(ctx context.Context) (string, error)
	AdminCredentialsFunc func(ctx context.Context) (*services.AdminCredentials, error)
	DeleteFunc           func(ctx context.Context, id string) error
}

func (m *mockUserService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &models.User{}, nil
}

func (m *mockUserService) CheckEmail(ctx context.Context, email string) (*services.EmailCheck, error) {
	if m.CheckEmailFunc != nil {
		return m.CheckEmailFunc(ctx, email)
	}
	return &services.EmailCheck{}, nil
}

func (m *mockUserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	if m.RoleByEmailFunc != nil {
		return m.RoleByEmailFunc(ctx, email)
	}
	return "", nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListNonAdmin(ctx context.Context) ([]*models.User, error) {
	if m.ListNonAdminFunc != nil {
		return m.ListNonAdminFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserService) AdminEmail(ctx context.Context) (string, error) {
	if m.AdminEmailFunc != nil {
		return m.AdminEmailFunc(ctx)
	}
	return "", nil
}

func (m *mockUserService) AdminCredentials(ctx context.Context) (*services.AdminCredentials, error) {
	if m.AdminCredentialsFunc != nil {
		return m.AdminCredentialsFunc(ctx)
	}
	return &services.AdminCredentials{}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockProjectService struct {
	CreateFunc func(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error)
	ListFunc   func(ctx context.Context, userID string, isAdmin bool) ([]*models.Project, error)
	UpdateFunc func(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockProjectService) Create(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) List(ctx context.Context, userID string, isAdmin bool) ([]*models.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, isAdmin)
	}
	return nil, nil
}

func (m *mockProjectService) Update(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockNotificationService struct {
	NotifyFunc      func(ctx context.Context, userID, message, notificationType string) (*models.Notification, error)
	ListForUserFunc func(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkReadFunc    func(ctx context.Context, id string) error
}

func (m *mockNotificationService) Notify(ctx context.Context, userID, message, notificationType string) (*models.Notification, error) {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, userID, message, notificationType)
	}
	return &models.Notification{}, nil
}

func (m *mockNotificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id)
	}
	return nil
}

type mockSuggestionService struct {
	GenerateFunc func(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error)
}

func (m *mockSuggestionService) Generate(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, projectGoal, userRole)
	}
	return []*models.Suggestion{}, nil
}

var (
	_ services.TaskService         = (*mockTaskService)(nil)
	_ services.UserService         = (*mockUserService)(nil)
	_ services.ProjectService      = (*mockProjectService)(nil)
	_ services.NotificationService = (*mockNotificationService)(nil)
	_ services.SuggestionService   = (*mockSuggestionService)(nil)
)

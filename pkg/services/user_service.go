package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/ids"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/realtime"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// IdentityProvider is the external identity lookup collaborator: given an
// email, it reports whether an account exists there. The core consumes this
// as a fact source only; authentication itself is delegated.
type IdentityProvider interface {
	EmailRegistered(ctx context.Context, email string) (bool, error)
}

// RegisterRequest carries the fields for a new account. ID is optional; one
// is generated from the role prefix when absent.
type RegisterRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// EmailCheck is the result of an identity lookup.
type EmailCheck struct {
	Registered bool   `json:"registered"`
	IsAdmin    bool   `json:"isAdmin"`
	Reason     string `json:"reason,omitempty"`
}

// AdminCredentials is the cleartext credential pair served by the dedicated
// lookup endpoint. Carried over from the existing deployment and flagged as
// insecure; do not log it.
type AdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService owns account registration and the delete cascade.
type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	CheckEmail(ctx context.Context, email string) (*EmailCheck, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListNonAdmin(ctx context.Context) ([]*models.User, error)
	AdminEmail(ctx context.Context) (string, error)
	AdminCredentials(ctx context.Context) (*AdminCredentials, error)
	// Delete removes the user and cascades: their assigned tasks are
	// deleted and they are pulled from every project's member set. The
	// admin account cannot be deleted.
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users         repositories.UserRepository
	tasks         repositories.TaskRepository
	projects      repositories.ProjectRepository
	notifications NotificationService
	identity      IdentityProvider
	broadcaster   Broadcaster
	logger        *zap.Logger
}

// NewUserService creates a new UserService. identity may be nil when no
// external identity provider is configured; lookups then consult the local
// store only.
func NewUserService(
	users repositories.UserRepository,
	tasks repositories.TaskRepository,
	projects repositories.ProjectRepository,
	notifications NotificationService,
	identity IdentityProvider,
	broadcaster Broadcaster,
	logger *zap.Logger,
) UserService {
	return &userService{
		users:         users,
		tasks:         tasks,
		projects:      projects,
		notifications: notifications,
		identity:      identity,
		broadcaster:   broadcaster,
		logger:        logger.Named("user-service"),
	}
}

var _ UserService = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	if req.Role == models.RoleAdmin {
		if _, err := s.users.GetAdmin(ctx); err == nil {
			return nil, apperrors.ErrAdminExists
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("check existing admin: %w", err)
		}
	}

	user := &models.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if user.ID == "" {
		prefix := ids.PrefixUser
		if user.Role == models.RoleAdmin {
			prefix = ids.PrefixAdmin
		}
		user.ID = ids.New(prefix)
	}
	if user.Role == models.RoleAdmin {
		user.Password = req.Password
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.broadcaster.Broadcast(realtime.Event{Type: realtime.EventUserCreated, Data: user})

	message := fmt.Sprintf("Welcome, %s! Your account has been successfully created.", user.Name)
	if _, err := s.notifications.Notify(ctx, user.ID, message, models.NotificationWelcome); err != nil {
		s.logger.Error("failed to create welcome notification",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}

	return user, nil
}

// CheckEmail consults the local store first: admin accounts short-circuit
// (the admin cannot reset a password through the external provider). For
// everyone else the external identity provider is the fact source.
func (s *userService) CheckEmail(ctx context.Context, email string) (*EmailCheck, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil && user.Role == models.RoleAdmin {
		return &EmailCheck{
			Registered: true,
			IsAdmin:    true,
			Reason:     "Admins cannot reset password here",
		}, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if s.identity == nil {
		return &EmailCheck{Registered: err == nil}, nil
	}

	registered, err := s.identity.EmailRegistered(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	return &EmailCheck{Registered: registered}, nil
}

func (s *userService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) ListNonAdmin(ctx context.Context) ([]*models.User, error) {
	return s.users.ListNonAdmin(ctx)
}

func (s *userService) AdminEmail(ctx context.Context) (string, error) {
	admin, err := s.users.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return admin.Email, nil
}

func (s *userService) AdminCredentials(ctx context.Context) (*AdminCredentials, error) {
	admin, err := s.users.GetAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminCredentials{Email: admin.Email, Password: admin.Password}, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		return apperrors.ErrAdminUndeletable
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.DeleteByAssignee(ctx, id); err != nil {
		s.logger.Error("failed to delete user's tasks", zap.String("user_id", id), zap.Error(err))
	}
	if err := s.projects.RemoveMemberEverywhere(ctx, id); err != nil {
		s.logger.Error("failed to remove user from projects", zap.String("user_id", id), zap.Error(err))
	}

	return nil
}

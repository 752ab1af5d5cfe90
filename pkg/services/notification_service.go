package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/ids"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// DefaultNotificationLimit caps how many notifications a listing returns.
const DefaultNotificationLimit = 10

// NotificationService creates and serves per-user notifications.
type NotificationService interface {
	// Notify constructs a notification record and persists it. There is no
	// deduplication: repeated triggers create repeated notifications.
	Notify(ctx context.Context, userID, message, notificationType string) (*models.Notification, error)

	// ListForUser returns the user's notifications, newest first.
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)

	// MarkRead flips the read flag. The only mutation notifications support.
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.Named("notification-service"),
	}
}

var _ NotificationService = (*notificationService)(nil)

func (s *notificationService) Notify(ctx context.Context, userID, message, notificationType string) (*models.Notification, error) {
	notification := &models.Notification{
		ID:        ids.New(ids.PrefixNotification),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	return notification, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repo.ListForUser(ctx, userID, DefaultNotificationLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

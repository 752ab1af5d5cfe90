package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

// NotificationsHandler handles notification listing and read toggling.
type NotificationsHandler struct {
	notificationService services.NotificationService
	logger              *zap.Logger
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(notificationService services.NotificationService, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// RegisterRoutes registers the notifications handler's routes on the given mux.
func (h *NotificationsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /notifications", h.List)
	mux.HandleFunc("PUT /notifications/{id}/read", h.MarkRead)
}

// List handles GET /notifications?userId=. Newest first, capped at 10.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing_user_id", "userId is required")
		return
	}

	notifications, err := h.notificationService.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.String("user_id", userID), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	if err := WriteJSON(w, http.StatusOK, notifications); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// MarkRead handles PUT /notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.notificationService.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "Notification not found")
			return
		}
		h.logger.Error("Failed to mark notification read", zap.String("notification_id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *NotificationsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

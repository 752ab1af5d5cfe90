package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

// CheckEmailRequest is the request body for the identity lookup.
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// UsersHandler handles registration, identity lookups, and user management.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /check-email", h.CheckEmail)
	mux.HandleFunc("GET /get-role", h.GetRole)
	mux.HandleFunc("GET /loggedinuser", h.LoggedInUser)
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("GET /admin-email", h.AdminEmail)
	mux.HandleFunc("GET /admin-credentials", h.AdminCredentials)
	mux.HandleFunc("DELETE /users/{id}", h.Delete)
}

// Register handles POST /register.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Name and email are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.IsValidRole(req.Role) {
		h.writeError(w, http.StatusBadRequest, "invalid_role", "Invalid role. Must be one of: user, admin")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken):
			h.writeError(w, http.StatusBadRequest, "email_taken", err.Error())
		case errors.Is(err, apperrors.ErrAdminExists):
			h.writeError(w, http.StatusForbidden, "admin_exists", err.Error())
		default:
			h.logger.Error("Failed to register user", zap.String("email", req.Email), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CheckEmail handles POST /check-email.
func (h *UsersHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req CheckEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		h.writeError(w, http.StatusBadRequest, "missing_email", "Email is required")
		return
	}

	check, err := h.userService.CheckEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to check email", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, check); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetRole handles GET /get-role?email=.
func (h *UsersHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "missing_email", "Email is required")
		return
	}

	role, err := h.userService.RoleByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		h.logger.Error("Failed to fetch role", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"role": role}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// LoggedInUser handles GET /loggedinuser?email=. The response is an
// array-of-one for compatibility with the existing frontend hook, and never
// includes the password field.
func (h *UsersHandler) LoggedInUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := WriteJSON(w, http.StatusNotFound, []any{}); err != nil {
				h.logger.Error("Failed to write response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to fetch logged in user", zap.Error(err))
		if err := WriteJSON(w, http.StatusInternalServerError, []any{}); err != nil {
			h.logger.Error("Failed to write response", zap.Error(err))
		}
		return
	}

	payload := []map[string]string{{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}}
	if err := WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /users. Admin accounts are excluded.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListNonAdmin(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	if err := WriteJSON(w, http.StatusOK, users); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AdminEmail handles GET /admin-email.
func (h *UsersHandler) AdminEmail(w http.ResponseWriter, r *http.Request) {
	email, err := h.userService.AdminEmail(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch admin email", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	var payload map[string]any
	if email == "" {
		payload = map[string]any{"adminEmail": nil}
	} else {
		payload = map[string]any{"adminEmail": email}
	}
	if err := WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AdminCredentials handles GET /admin-credentials. The admin password is
// stored and served in clear text; this mirrors the existing deployment and
// is a known security hole.
func (h *UsersHandler) AdminCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.userService.AdminCredentials(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "No admin found")
			return
		}
		h.logger.Error("Failed to fetch admin credentials", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, creds); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "not_found", "User not found")
		case errors.Is(err, apperrors.ErrAdminUndeletable):
			h.writeError(w, http.StatusForbidden, "admin_undeletable", "Cannot delete admin user")
		default:
			h.logger.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *UsersHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

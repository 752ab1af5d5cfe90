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

// ProjectsHandler handles project-related HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /projects", h.Create)
	mux.HandleFunc("GET /projects", h.List)
	mux.HandleFunc("PUT /projects/{id}", h.Update)
	mux.HandleFunc("DELETE /projects/{id}", h.Delete)
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Description == "" || req.Members == nil {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Name, description and members are required")
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create project", zap.String("name", req.Name), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /projects. Admins see every project; regular users must
// pass their userId and see only projects they are members of.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	isAdmin := r.URL.Query().Get("isAdmin") == "true"

	if !isAdmin && userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing_user_id", "User ID is required for non-admin requests")
		return
	}

	projects, err := h.projectService.List(r.Context(), userID, isAdmin)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}

	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /projects/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req services.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Description == "" || req.Members == nil {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Name, description and members are required")
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		h.logger.Error("Failed to update project", zap.String("project_id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	payload := map[string]any{
		"message":        "Project updated successfully",
		"updatedProject": project,
	}
	if err := WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /projects/{id}. Deletion cascades to the project's
// tasks.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		h.logger.Error("Failed to delete project", zap.String("project_id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	payload := map[string]string{"message": "Project and associated tasks deleted successfully"}
	if err := WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *ProjectsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

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

// TasksHandler handles task-related HTTP requests.
type TasksHandler struct {
	taskService services.TaskService
	logger      *zap.Logger
}

// NewTasksHandler creates a new tasks handler.
func NewTasksHandler(taskService services.TaskService, logger *zap.Logger) *TasksHandler {
	return &TasksHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// RegisterRoutes registers the tasks handler's routes on the given mux.
func (h *TasksHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /tasks", h.Create)
	mux.HandleFunc("GET /tasks", h.List)
	mux.HandleFunc("PUT /tasks/{id}", h.Update)
	mux.HandleFunc("DELETE /tasks/{id}", h.Delete)
}

// Create handles POST /tasks. Insert and aggregator failures both surface
// as the same generic 500; the caller cannot tell whether the task row
// committed before the failure.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Title == "" || req.ProjectID == "" || req.AssigneeID == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Title, projectId and assigneeId are required")
		return
	}

	task, err := h.taskService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create task", zap.String("title", req.Title), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, task); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /tasks with the filter matrix: isAdmin lists everything
// (optionally narrowed), otherwise at least one of projectId, userId, or
// assigneeId is required.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.TaskListQuery{
		ProjectID:  q.Get("projectId"),
		UserID:     q.Get("userId"),
		AssigneeID: q.Get("assigneeId"),
		IsAdmin:    q.Get("isAdmin") == "true",
	}

	tasks, err := h.taskService.List(r.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrFilterRequired) {
			h.writeError(w, http.StatusBadRequest, "missing_filter", err.Error())
			return
		}
		h.logger.Error("Failed to list tasks", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	if err := WriteJSON(w, http.StatusOK, tasks); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /tasks/{id}. Bodies naming id or createdAt are
// rejected: both are immutable after creation.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if _, ok := raw["id"]; ok {
		h.writeError(w, http.StatusBadRequest, "immutable_field", apperrors.ErrImmutableField.Error())
		return
	}
	if _, ok := raw["createdAt"]; ok {
		h.writeError(w, http.StatusBadRequest, "immutable_field", apperrors.ErrImmutableField.Error())
		return
	}

	patch, err := decodeTaskPatch(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.taskService.Update(r.Context(), id, patch); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "Task not found")
			return
		}
		h.logger.Error("Failed to update task", zap.String("task_id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"message": "Task updated successfully"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "Task not found")
			return
		}
		h.logger.Error("Failed to delete task", zap.String("task_id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// decodeTaskPatch re-decodes the already-parsed body into the typed patch.
// Unknown fields are ignored, matching the loose document-update behavior
// the frontend expects.
func decodeTaskPatch(raw map[string]json.RawMessage) (*models.TaskPatch, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var patch models.TaskPatch
	if err := json.Unmarshal(buf, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

func (h *TasksHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

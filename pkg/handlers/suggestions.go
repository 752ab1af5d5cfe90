package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

// GenerateSuggestionsRequest is the request body for suggestion generation.
type GenerateSuggestionsRequest struct {
	ProjectGoal string `json:"projectGoal"`
	UserRole    string `json:"userRole"`
}

// SuggestionsHandler handles AI suggestion generation.
type SuggestionsHandler struct {
	suggestionService services.SuggestionService
	logger            *zap.Logger
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(suggestionService services.SuggestionService, logger *zap.Logger) *SuggestionsHandler {
	return &SuggestionsHandler{
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the suggestions handler's routes on the given mux.
func (h *SuggestionsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /generate-ai-suggestions", h.Generate)
}

// Generate handles POST /generate-ai-suggestions.
func (h *SuggestionsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateSuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.ProjectGoal == "" {
		h.writeError(w, http.StatusBadRequest, "missing_project_goal", "Project goal is required.")
		return
	}

	suggestions, err := h.suggestionService.Generate(r.Context(), req.ProjectGoal, req.UserRole)
	if err != nil {
		h.logger.Error("Failed to generate suggestions", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "generation_failed", "Failed to generate AI suggestions.")
		return
	}

	if err := WriteJSON(w, http.StatusOK, suggestions); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *SuggestionsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

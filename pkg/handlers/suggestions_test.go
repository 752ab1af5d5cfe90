package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

func newSuggestionsServer(svc services.SuggestionService) *http.ServeMux {
	mux := http.NewServeMux()
	NewSuggestionsHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestSuggestionsHandlerGenerate(t *testing.T) {
	t.Run("returns the generated list", func(t *testing.T) {
		var gotGoal, gotRole string
		svc := &mockSuggestionService{
			GenerateFunc: func(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error) {
				gotGoal, gotRole = projectGoal, userRole
				return []*models.Suggestion{
					{ID: "ai_1", Title: "Set up repo", Priority: models.PriorityMedium, EstimatedHours: 2},
				}, nil
			},
		}
		mux := newSuggestionsServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate-ai-suggestions",
			strings.NewReader(`{"projectGoal": "Build a task manager", "userRole": "admin"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Build a task manager", gotGoal)
		assert.Equal(t, "admin", gotRole)

		var list []*models.Suggestion
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "ai_1", list[0].ID)
	})

	t.Run("missing project goal returns 400", func(t *testing.T) {
		mux := newSuggestionsServer(&mockSuggestionService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate-ai-suggestions",
			strings.NewReader(`{"userRole": "user"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "missing_project_goal", body["error"])
		assert.Equal(t, "Project goal is required.", body["message"])
	})

	t.Run("generation failure returns 500", func(t *testing.T) {
		svc := &mockSuggestionService{
			GenerateFunc: func(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error) {
				return nil, assert.AnError
			},
		}
		mux := newSuggestionsServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate-ai-suggestions",
			strings.NewReader(`{"projectGoal": "Anything"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "generation_failed", decodeError(t, rec)["error"])
	})
}

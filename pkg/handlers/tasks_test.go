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

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

func newTasksServer(svc services.TaskService) *http.ServeMux {
	mux := http.NewServeMux()
	NewTasksHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTasksHandlerCreate(t *testing.T) {
	t.Run("returns 201 with the created task", func(t *testing.T) {
		svc := &mockTaskService{
			CreateFunc: func(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
				return &models.Task{ID: "tsk_1", Title: req.Title, ProjectID: req.ProjectID}, nil
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks",
			strings.NewReader(`{"title": "Write docs", "projectId": "prj_1", "assigneeId": "usr_1"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var task models.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.Equal(t, "tsk_1", task.ID)
	})

	t.Run("missing required fields returns 400", func(t *testing.T) {
		mux := newTasksServer(&mockTaskService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title": "no project"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_fields", decodeError(t, rec)["error"])
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		mux := newTasksServer(&mockTaskService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{not json`))
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("aggregator failure after the insert returns 500", func(t *testing.T) {
		// The task row may have committed, but the caller sees the same
		// generic error as for a failed insert.
		svc := &mockTaskService{
			CreateFunc: func(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
				return &models.Task{ID: "tsk_1"}, assert.AnError
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks",
			strings.NewReader(`{"title": "T", "projectId": "prj_1", "assigneeId": "usr_1"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_error", decodeError(t, rec)["error"])
		assert.NotContains(t, rec.Body.String(), "tsk_1")
	})

	t.Run("insert failure returns 500", func(t *testing.T) {
		svc := &mockTaskService{
			CreateFunc: func(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
				return nil, assert.AnError
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks",
			strings.NewReader(`{"title": "T", "projectId": "prj_1", "assigneeId": "usr_1"}`))
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTasksHandlerList(t *testing.T) {
	t.Run("passes query filters through", func(t *testing.T) {
		var got services.TaskListQuery
		svc := &mockTaskService{
			ListFunc: func(ctx context.Context, query services.TaskListQuery) ([]*models.Task, error) {
				got = query
				return []*models.Task{{ID: "tsk_1"}}, nil
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks?projectId=prj_1&userId=usr_1&isAdmin=true", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "prj_1", got.ProjectID)
		assert.Equal(t, "usr_1", got.UserID)
		assert.True(t, got.IsAdmin)
	})

	t.Run("missing filter returns 400", func(t *testing.T) {
		svc := &mockTaskService{
			ListFunc: func(ctx context.Context, query services.TaskListQuery) ([]*models.Task, error) {
				return nil, apperrors.ErrFilterRequired
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_filter", decodeError(t, rec)["error"])
	})

	t.Run("nil result serializes as an empty array", func(t *testing.T) {
		mux := newTasksServer(&mockTaskService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks?projectId=prj_1", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}

func TestTasksHandlerUpdate(t *testing.T) {
	t.Run("applies the patch", func(t *testing.T) {
		var gotID string
		var gotPatch *models.TaskPatch
		svc := &mockTaskService{
			UpdateFunc: func(ctx context.Context, id string, patch *models.TaskPatch) error {
				gotID = id
				gotPatch = patch
				return nil
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/tsk_1", strings.NewReader(`{"status": "done"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tsk_1", gotID)
		require.NotNil(t, gotPatch.Status)
		assert.Equal(t, models.TaskStatusDone, *gotPatch.Status)
		assert.Nil(t, gotPatch.Title)
	})

	t.Run("body naming id is rejected", func(t *testing.T) {
		called := false
		svc := &mockTaskService{
			UpdateFunc: func(ctx context.Context, id string, patch *models.TaskPatch) error {
				called = true
				return nil
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/tsk_1",
			strings.NewReader(`{"id": "tsk_other", "status": "done"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "immutable_field", decodeError(t, rec)["error"])
		assert.False(t, called)
	})

	t.Run("body naming createdAt is rejected", func(t *testing.T) {
		mux := newTasksServer(&mockTaskService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/tsk_1",
			strings.NewReader(`{"createdAt": "2024-01-01T00:00:00Z"}`))
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "immutable_field", decodeError(t, rec)["error"])
	})

	t.Run("unknown task returns 404", func(t *testing.T) {
		svc := &mockTaskService{
			UpdateFunc: func(ctx context.Context, id string, patch *models.TaskPatch) error {
				return apperrors.ErrNotFound
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/tsk_missing", strings.NewReader(`{"status": "done"}`))
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTasksHandlerDelete(t *testing.T) {
	t.Run("deletes and confirms", func(t *testing.T) {
		var gotID string
		svc := &mockTaskService{
			DeleteFunc: func(ctx context.Context, id string) error {
				gotID = id
				return nil
			},
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tasks/tsk_1", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tsk_1", gotID)
		assert.Equal(t, "Task deleted successfully", decodeError(t, rec)["message"])
	})

	t.Run("unknown task returns 404", func(t *testing.T) {
		svc := &mockTaskService{
			DeleteFunc: func(ctx context.Context, id string) error { return apperrors.ErrNotFound },
		}
		mux := newTasksServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tasks/tsk_missing", nil)
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

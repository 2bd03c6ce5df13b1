package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/mediadirect/mediadirect/internal/tasks"
)

type fakeMigrator struct {
	calls []string
	err   error
}

func (m *fakeMigrator) MigrateSubmission(ctx context.Context, submissionID string, progress chan<- tasks.ProgressUpdate) (*tasks.MigrationResult, error) {
	m.calls = append(m.calls, submissionID)
	if m.err != nil {
		return nil, m.err
	}
	return &tasks.MigrationResult{SubmissionID: submissionID, TotalAssets: 1, Migrated: 1}, nil
}

type fakeModerator struct {
	ids    []string
	status models.ModerationStatus
	err    error
}

func (m *fakeModerator) SetStatus(ctx context.Context, assetIDs []string, status models.ModerationStatus, progress chan<- tasks.ProgressUpdate) (*tasks.ModerationResult, error) {
	m.ids = assetIDs
	m.status = status
	if m.err != nil {
		return nil, m.err
	}
	return &tasks.ModerationResult{Status: status, Total: len(assetIDs), Updated: len(assetIDs)}, nil
}

func newTestHandler(migrator *fakeMigrator, moderator *fakeModerator) *TaskHandler {
	return NewTaskHandler(migrator, moderator, nil)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) taskResponse {
	t.Helper()
	var resp taskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestTaskHandlerMigrate(t *testing.T) {
	t.Run("runs migration and returns ok", func(t *testing.T) {
		migrator := &fakeMigrator{}
		handler := newTestHandler(migrator, &fakeModerator{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/migrate?id=sub-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "ok" {
			t.Errorf("expected status ok, got %s", resp.Status)
		}
		if len(migrator.calls) != 1 || migrator.calls[0] != "sub-1" {
			t.Errorf("expected migration of sub-1, got %v", migrator.calls)
		}
	})

	t.Run("missing id is acknowledged so the dispatcher stops", func(t *testing.T) {
		migrator := &fakeMigrator{}
		handler := newTestHandler(migrator, &fakeModerator{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/migrate", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for unusable input, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "dropped" {
			t.Errorf("expected status dropped, got %s", resp.Status)
		}
		if len(migrator.calls) != 0 {
			t.Errorf("expected no migration attempt, got %v", migrator.calls)
		}
	})

	t.Run("permanent engine error is dropped", func(t *testing.T) {
		migrator := &fakeMigrator{err: fmt.Errorf("%w: submission 'sub-1'", shared.ErrSubmissionMissing)}
		handler := newTestHandler(migrator, &fakeModerator{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/migrate?id=sub-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for permanent error, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "dropped" {
			t.Errorf("expected status dropped, got %s", resp.Status)
		}
	})

	t.Run("transient engine error requests redelivery", func(t *testing.T) {
		migrator := &fakeMigrator{err: fmt.Errorf("%w: upstream 502", shared.ErrHostRequest)}
		handler := newTestHandler(migrator, &fakeModerator{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/migrate?id=sub-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500 for transient error, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "retry" {
			t.Errorf("expected status retry, got %s", resp.Status)
		}
	})

	t.Run("rejects non-POST", func(t *testing.T) {
		handler := newTestHandler(&fakeMigrator{}, &fakeModerator{})

		req := httptest.NewRequest(http.MethodGet, "/tasks/migrate?id=sub-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestTaskHandlerModerate(t *testing.T) {
	t.Run("parses ids and status", func(t *testing.T) {
		moderator := &fakeModerator{}
		handler := newTestHandler(&fakeMigrator{}, moderator)

		req := httptest.NewRequest(http.MethodPost, "/tasks/moderate?ids=a-1,%20a-2,&status=approved", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if len(moderator.ids) != 2 || moderator.ids[0] != "a-1" || moderator.ids[1] != "a-2" {
			t.Errorf("expected trimmed ids [a-1 a-2], got %v", moderator.ids)
		}
		if moderator.status != models.StatusApproved {
			t.Errorf("expected APPROVED, got %s", moderator.status)
		}
	})

	t.Run("invalid status is dropped without calling the engine", func(t *testing.T) {
		moderator := &fakeModerator{}
		handler := newTestHandler(&fakeMigrator{}, moderator)

		req := httptest.NewRequest(http.MethodPost, "/tasks/moderate?ids=a-1&status=maybe", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for unusable input, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "dropped" {
			t.Errorf("expected status dropped, got %s", resp.Status)
		}
		if moderator.ids != nil {
			t.Errorf("expected no engine call, got ids %v", moderator.ids)
		}
	})

	t.Run("empty ids is dropped", func(t *testing.T) {
		handler := newTestHandler(&fakeMigrator{}, &fakeModerator{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/moderate?ids=,,&status=approved", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if resp := decodeResponse(t, rec); resp.Status != "dropped" {
			t.Errorf("expected status dropped, got %s", resp.Status)
		}
	})

	t.Run("halted batch with transient cause returns 500", func(t *testing.T) {
		moderator := &fakeModerator{err: fmt.Errorf("%w: collection 'col-ok' still full after eviction", shared.ErrCollectionFull)}
		handler := newTestHandler(&fakeMigrator{}, moderator)

		req := httptest.NewRequest(http.MethodPost, "/tasks/moderate?ids=a-1&status=approved", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("applies middleware in order", func(t *testing.T) {
		router := NewBasicRouter()
		var order []string

		mk := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		router.Use(mk("first"), mk("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "handler" {
			t.Errorf("unexpected execution order: %v", order)
		}
	})

	t.Run("enforces method on Handle", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodPost, "/only-post", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/only-post", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("registers every route of a Handler", func(t *testing.T) {
		router := NewBasicRouter()
		handler := newTestHandler(&fakeMigrator{}, &fakeModerator{})
		router.Handler(handler)

		for _, route := range handler.Routes() {
			req := httptest.NewRequest(http.MethodPost, route+"?id=x&ids=x&status=approved", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code == http.StatusNotFound {
				t.Errorf("route %s not registered", route)
			}
		}
	})
}

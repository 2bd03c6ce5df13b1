package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/mediadirect/mediadirect/internal/tasks"
)

// Migrator runs submission migrations. Implemented by tasks.MigrationEngine.
type Migrator interface {
	MigrateSubmission(ctx context.Context, submissionID string, progress chan<- tasks.ProgressUpdate) (*tasks.MigrationResult, error)
}

// Moderator applies moderation decisions. Implemented by tasks.ModerationEngine.
type Moderator interface {
	SetStatus(ctx context.Context, assetIDs []string, status models.ModerationStatus, progress chan<- tasks.ProgressUpdate) (*tasks.ModerationResult, error)
}

// TaskHandler serves the task dispatcher's POST endpoints.
//
// The dispatcher retries any non-2xx response. A task that failed on bad
// input would fail identically on every retry, so permanent errors are
// answered with 200 and a logged warning; only transient failures return 500
// to request redelivery.
type TaskHandler struct {
	migrator  Migrator
	moderator Moderator
	logger    *log.Logger
}

// NewTaskHandler creates a TaskHandler over the two engines.
func NewTaskHandler(migrator Migrator, moderator Moderator, logger *log.Logger) *TaskHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TaskHandler{migrator: migrator, moderator: moderator, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *TaskHandler) Routes() []string {
	return []string{"/tasks/migrate", "/tasks/moderate"}
}

// taskResponse is the JSON body for every task endpoint reply.
type taskResponse struct {
	Status string `json:"status"` // "ok", "dropped", or "retry"
	Error  string `json:"error,omitempty"`
	Result any    `json:"result,omitempty"`
}

func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/tasks/migrate":
		h.migrate(w, r)
	case "/tasks/moderate":
		h.moderate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TaskHandler) migrate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.drop(w, r, shared.ErrMissingArgument)
		return
	}

	result, err := h.migrator.MigrateSubmission(r.Context(), id, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Status: "ok", Result: result})
}

func (h *TaskHandler) moderate(w http.ResponseWriter, r *http.Request) {
	ids := splitIDs(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		h.drop(w, r, shared.ErrMissingArgument)
		return
	}

	status, err := models.ParseModerationStatus(r.URL.Query().Get("status"))
	if err != nil {
		h.drop(w, r, err)
		return
	}

	result, err := h.moderator.SetStatus(r.Context(), ids, status, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Status: "ok", Result: result})
}

// drop acknowledges a task whose input can never succeed. The 200 stops the
// dispatcher from redelivering it.
func (h *TaskHandler) drop(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("dropping task with unusable input", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusOK, taskResponse{Status: "dropped", Error: err.Error()})
}

// fail routes an engine error to the dispatcher: permanent errors are dropped
// with a 200, transient ones return 500 so the task is redelivered.
func (h *TaskHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if shared.IsPermanent(err) {
		h.drop(w, r, err)
		return
	}
	h.logger.Error("task failed, requesting redelivery", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, taskResponse{Status: "retry", Error: err.Error()})
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

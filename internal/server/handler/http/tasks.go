package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/middleware"
	"github.com/atinyakov/TaskTracker/internal/models"
)

// TaskService defines the interface for task operations required by the
// TasksHandler. A nil owner means the caller is an admin and operations
// run unscoped; otherwise they are restricted to the owner's tasks.
type TaskService interface {
	List(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error)
	Get(ctx context.Context, owner *int64, id int64) (*models.Task, error)
	Create(ctx context.Context, task models.Task) (*models.Task, error)
	Update(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	BulkUpdate(ctx context.Context, owner *int64, ids []int64, patch models.TaskPatch) (int, error)
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	Stats(ctx context.Context, owner *int64) (*models.TaskStats, error)
}

// TasksHandler handles HTTP requests for the task CRUD, bulk, and stats
// endpoints. All routes it serves run behind the authentication middleware.
type TasksHandler struct {
	// TaskService performs the underlying task operations.
	TaskService TaskService
	// Log records server-side failure detail.
	Log *zap.Logger
}

// ownerScope derives the query scope from the authenticated claims:
// admins operate unscoped (nil), everyone else is limited to their own rows.
func ownerScope(ctx context.Context) (*int64, bool) {
	claims := middleware.ClaimsFromContext(ctx)
	if claims == nil {
		return nil, false
	}
	if claims.Role == models.RoleAdmin {
		return nil, true
	}
	id := claims.UserID
	return &id, true
}

// listResponse is the JSON body for GET /api/tasks.
type listResponse struct {
	Data  []models.Task `json:"data"`
	Total int           `json:"total"`
}

// List handles GET /api/tasks. Filters (status, assignee, priority) and the
// sort key come from the query string; unknown sort keys fall back to the
// default order inside the store.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := models.TaskFilter{
		Status:   r.URL.Query().Get("status"),
		Assignee: r.URL.Query().Get("assignee"),
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			fe := fieldErrors{}
			fe.add("priority", "priority must be an integer")
			writeValidationError(w, fe)
			return
		}
		filter.Priority = &p
	}

	tasks, err := h.TaskService.List(r.Context(), owner, filter, r.URL.Query().Get("sort"))
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, listResponse{Data: tasks, Total: len(tasks)})
}

// Get handles GET /api/tasks/{id}.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.TaskService.Get(r.Context(), owner, id)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles POST /api/tasks. The task is owned by the authenticated
// user; validation failures report structured field errors.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	task, err := h.TaskService.Create(r.Context(), req.toTask(claims.UserID))
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": task.ID})
}

// Update handles PUT /api/tasks/{id}. Only supplied fields change;
// updated_at is refreshed regardless. Responds with the updated task.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	task, err := h.TaskService.Update(r.Context(), owner, id, req.toPatch())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}. The route is admin-gated by the
// role middleware, so the delete runs unscoped.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.TaskService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdate handles POST /api/tasks/bulk/update. The same per-item scoping
// as single-item updates applies; ids outside the caller's scope are skipped.
func (h *TasksHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req bulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	updated, err := h.TaskService.BulkUpdate(r.Context(), owner, req.IDs, req.Updates.toPatch())
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// BulkDelete handles POST /api/tasks/bulk/delete. Admin-gated by the role
// middleware.
func (h *TasksHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	if _, err := h.TaskService.BulkDelete(r.Context(), req.IDs); err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/tasks/stats, returning per-status counts within
// the caller's scope.
func (h *TasksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerScope(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.TaskService.Stats(r.Context(), owner)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

package service

import (
	"context"
	"errors"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// TaskRepository defines the persistence operations needed by the TaskService.
// A nil owner means the caller is unscoped (admin); otherwise every operation
// is restricted to rows owned by that user inside the query.
type TaskRepository interface {
	// List returns tasks matching the filter, ordered by the sort column.
	List(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error)
	// GetByID fetches a single task, or models.ErrTaskNotFound.
	GetByID(ctx context.Context, owner *int64, id int64) (*models.Task, error)
	// Create inserts a new task and sets its timestamps.
	Create(ctx context.Context, task models.Task) (*models.Task, error)
	// Update applies a partial update, or returns models.ErrTaskNotFound.
	Update(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error)
	// Delete removes a task by id, or returns models.ErrTaskNotFound.
	Delete(ctx context.Context, id int64) error
	// DeleteMany removes tasks by id and reports how many rows were removed.
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	// Stats returns per-status counts.
	Stats(ctx context.Context, owner *int64) (*models.TaskStats, error)
}

// TaskService implements task business logic by delegating to a TaskRepository.
type TaskService struct {
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided TaskRepository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns tasks visible to the caller, filtered and sorted.
func (s *TaskService) List(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error) {
	return s.repo.List(ctx, owner, filter, sort)
}

// Get fetches a single task within the caller's scope.
func (s *TaskService) Get(ctx context.Context, owner *int64, id int64) (*models.Task, error) {
	return s.repo.GetByID(ctx, owner, id)
}

// Create inserts a new task for the owning user.
func (s *TaskService) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	return s.repo.Create(ctx, task)
}

// Update applies a partial update within the caller's scope.
func (s *TaskService) Update(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error) {
	return s.repo.Update(ctx, owner, id, patch)
}

// Delete removes a single task by id.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// BulkUpdate applies the same patch to each id within the caller's scope
// and returns the number of tasks actually updated. Tasks that are absent
// or outside the scope are skipped, not errors.
func (s *TaskService) BulkUpdate(ctx context.Context, owner *int64, ids []int64, patch models.TaskPatch) (int, error) {
	updated := 0
	for _, id := range ids {
		if _, err := s.repo.Update(ctx, owner, id, patch); err != nil {
			if errors.Is(err, models.ErrTaskNotFound) {
				continue
			}
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// BulkDelete removes the given tasks and returns the number of rows removed.
func (s *TaskService) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	return s.repo.DeleteMany(ctx, ids)
}

// Stats returns per-status counts within the caller's scope.
func (s *TaskService) Stats(ctx context.Context, owner *int64) (*models.TaskStats, error) {
	return s.repo.Stats(ctx, owner)
}

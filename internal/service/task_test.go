package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/TaskTracker/internal/models"
)

type mockTaskRepo struct {
	ListFunc       func(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error)
	GetByIDFunc    func(ctx context.Context, owner *int64, id int64) (*models.Task, error)
	CreateFunc     func(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateFunc     func(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteFunc     func(ctx context.Context, id int64) error
	DeleteManyFunc func(ctx context.Context, ids []int64) (int64, error)
	StatsFunc      func(ctx context.Context, owner *int64) (*models.TaskStats, error)
}

func (m *mockTaskRepo) List(ctx context.Context, owner *int64, filter models.TaskFilter, sort string) ([]models.Task, error) {
	return m.ListFunc(ctx, owner, filter, sort)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, owner *int64, id int64) (*models.Task, error) {
	return m.GetByIDFunc(ctx, owner, id)
}
func (m *mockTaskRepo) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	return m.CreateFunc(ctx, task)
}
func (m *mockTaskRepo) Update(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error) {
	return m.UpdateFunc(ctx, owner, id, patch)
}
func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTaskRepo) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return m.DeleteManyFunc(ctx, ids)
}
func (m *mockTaskRepo) Stats(ctx context.Context, owner *int64) (*models.TaskStats, error) {
	return m.StatsFunc(ctx, owner)
}

func TestBulkUpdate_SkipsMissing(t *testing.T) {
	owner := int64(5)
	repo := &mockTaskRepo{
		UpdateFunc: func(ctx context.Context, got *int64, id int64, patch models.TaskPatch) (*models.Task, error) {
			if got == nil || *got != owner {
				t.Errorf("Update received owner = %v; want %d", got, owner)
			}
			if id == 2 {
				return nil, models.ErrTaskNotFound
			}
			return &models.Task{ID: id}, nil
		},
	}
	svc := NewTaskService(repo)

	updated, err := svc.BulkUpdate(context.Background(), &owner, []int64{1, 2, 3}, models.TaskPatch{})
	if err != nil {
		t.Fatalf("BulkUpdate returned error: %v", err)
	}
	if updated != 2 {
		t.Errorf("BulkUpdate = %d; want 2 (missing id skipped)", updated)
	}
}

func TestBulkUpdate_StopsOnStorageError(t *testing.T) {
	wantErr := errors.New("db down")
	calls := 0
	repo := &mockTaskRepo{
		UpdateFunc: func(ctx context.Context, owner *int64, id int64, patch models.TaskPatch) (*models.Task, error) {
			calls++
			if calls == 2 {
				return nil, wantErr
			}
			return &models.Task{ID: id}, nil
		},
	}
	svc := NewTaskService(repo)

	updated, err := svc.BulkUpdate(context.Background(), nil, []int64{1, 2, 3}, models.TaskPatch{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("BulkUpdate error = %v; want %v", err, wantErr)
	}
	if updated != 1 {
		t.Errorf("BulkUpdate = %d; want 1 before the failure", updated)
	}
	if calls != 2 {
		t.Errorf("Update called %d times; want 2", calls)
	}
}

func TestBulkDelete_Delegates(t *testing.T) {
	repo := &mockTaskRepo{
		DeleteManyFunc: func(ctx context.Context, ids []int64) (int64, error) {
			if len(ids) != 3 {
				t.Errorf("DeleteMany received %d ids; want 3", len(ids))
			}
			return 3, nil
		},
	}
	svc := NewTaskService(repo)

	n, err := svc.BulkDelete(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("BulkDelete returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("BulkDelete = %d; want 3", n)
	}
}

package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// TaskUpdate carries the fields a partial task update may change.
//
// ProjectID and AssignedToID use a double pointer: nil leaves the relation
// untouched, a pointer to nil disconnects it.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	DueDate      *time.Time
	ProjectID    **string
	AssignedToID **string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns every task ordered by due date, tasks without one last.
	List(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

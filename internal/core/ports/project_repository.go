package ports

import (
	"context"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// ProjectUpdate carries the fields a partial project update may change.
type ProjectUpdate struct {
	Name         *string
	Description  *string
	AssignedToID *string
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns every project ordered by name.
	List(ctx context.Context) ([]*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id string, update ProjectUpdate) error
	Delete(ctx context.Context, id string) error
}

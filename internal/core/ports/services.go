package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// CreateUserInput carries the data needed to create an account.
type CreateUserInput struct {
	FullName string
	Email    string
	Role     string
	Password string
}

// UpdateUserInput carries a partial account update. Empty strings are ignored.
type UpdateUserInput struct {
	FullName string
	Email    string
	Role     string
	Password string
}

// UserService defines account management use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) error
	Delete(ctx context.Context, id string) error
}

// CreateProjectInput carries the data needed to create a project.
type CreateProjectInput struct {
	Name         string
	Description  *string
	AssignedToID string
}

// UpdateProjectInput carries a partial project update. Empty strings are ignored.
type UpdateProjectInput struct {
	Name         string
	Description  string
	AssignedToID string
}

// Assignee is the lightweight view of a project's responsible user.
type Assignee struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// ProjectView is a project joined with its assignee.
type ProjectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	AssignedTo  Assignee  `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectService defines project management use cases.
type ProjectService interface {
	List(ctx context.Context) ([]ProjectView, error)
	Create(ctx context.Context, in CreateProjectInput) (*ProjectView, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries the data needed to create a task.
type CreateTaskInput struct {
	Title        string
	Description  *string
	Status       string
	DueDate      *time.Time
	ProjectID    string
	AssignedToID string
}

// UpdateTaskInput carries a partial task update. Nil fields are left untouched;
// an empty ProjectID or AssignedToID disconnects the relation.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ProjectID    *string
	AssignedToID *string
}

// TaskView is a task joined with its assignee.
type TaskView struct {
	domain.Task
	AssignedTo *Assignee `json:"assignedTo"`
}

// TaskService defines task management use cases.
type TaskService interface {
	List(ctx context.Context) ([]TaskView, error)
	Create(ctx context.Context, in CreateTaskInput) (*TaskView, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) (*TaskView, error)
	Delete(ctx context.Context, id string) error
}

// ProjectProgress counts a project's tasks per status for the dashboard chart.
type ProjectProgress struct {
	Project    string `json:"project"`
	Pending    int    `json:"pending"`
	InProgress int    `json:"inProgress"`
	InReview   int    `json:"inReview"`
	Done       int    `json:"done"`
}

// DashboardService computes dashboard aggregates.
type DashboardService interface {
	Progress(ctx context.Context) ([]ProjectProgress, error)
}

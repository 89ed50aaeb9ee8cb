package domain

import (
	"fmt"
	"time"
)

// TaskStatus is the Kanban column a task sits in.
type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskInProcess TaskStatus = "In_process"
	TaskReview    TaskStatus = "Review"
	TaskFinished  TaskStatus = "Finished"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProcess, TaskReview, TaskFinished:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts a wire string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// BoardLabel is the column heading shown on the board.
func (s TaskStatus) BoardLabel() string {
	switch s {
	case TaskInProcess:
		return "In progress"
	case TaskReview:
		return "In review"
	case TaskFinished:
		return "Done"
	default:
		return "Pending"
	}
}

// Task is a unit of work, optionally attached to a project and a user.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Status       TaskStatus `json:"status"`
	DueDate      *time.Time `json:"dueDate"`
	ProjectID    *string    `json:"projectId"`
	AssignedToID *string    `json:"assignedToId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

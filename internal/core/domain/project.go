package domain

import "time"

// Project groups tasks and has a single responsible user.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	AssignedToID string    `json:"assignedToId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

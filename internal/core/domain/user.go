package domain

import (
	"strings"
	"time"
)

// User is the persisted account record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the resolved claim set of whoever is making a request.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// Identity projects the stored record into the identity shape.
func (u *User) Identity() Identity {
	id := Identity{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
	if u.Name != "" {
		name := u.Name
		id.Name = &name
	}
	return id
}

// NormalizeEmail lowercases and trims an address for lookups and keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

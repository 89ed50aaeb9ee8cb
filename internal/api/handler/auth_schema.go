package handler

import "github.com/taskflow/taskboard/internal/core/domain"

type loginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Data loginCredentials `json:"data"`
}

type loginResponse struct {
	Role       domain.Role `json:"role"`
	RedirectTo string      `json:"redirectTo"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type meResponse struct {
	User domain.Identity   `json:"user"`
	Menu []domain.MenuItem `json:"menu"`
}

type errorBody struct {
	Error string `json:"error"`
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"missing field", domain.MissingField("name"), http.StatusBadRequest, "name is required"},
		{"wrapped invalid field", fmt.Errorf("create: %w", domain.InvalidField("status", "is unknown")), http.StatusBadRequest, "status is unknown"},
		{"in use", domain.ErrInUse, http.StatusConflict, "record is still referenced"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many attempts, try again later"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"task not found", fmt.Errorf("update: %w", domain.ErrTaskNotFound), http.StatusNotFound, "task not found"},
		{"duplicate", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/tasks", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

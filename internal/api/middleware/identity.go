package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskboard/internal/core/domain"
)

const identityKey = "identity"

// SetIdentity stores the resolved identity on the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// Identity returns the identity stored by Auth or by the page guard, or nil.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

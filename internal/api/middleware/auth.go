package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// IdentityResolver resolves the identity behind a request's session cookie.
type IdentityResolver interface {
	Resolve(ctx context.Context, header http.Header) (*domain.Identity, error)
}

// Auth resolves the session cookie against the user store and injects the
// identity into the context. Anonymous requests get a JSON 401; a store
// failure is passed to the error handler as a 500.
func Auth(resolver IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := resolver.Resolve(c.Request().Context(), c.Request().Header)
			if err != nil {
				log.Error().Err(err).Str("path", c.Path()).Msg("identity lookup failed")
				return err
			}
			if id == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

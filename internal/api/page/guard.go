package page

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/api/metrics"
	"github.com/taskflow/taskboard/internal/api/middleware"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// IdentityResolver resolves the identity behind a request's session cookie,
// re-read from the user store.
type IdentityResolver interface {
	Resolve(ctx context.Context, header http.Header) (*domain.Identity, error)
}

// Guard wraps page loaders with authentication and role checks.
type Guard struct {
	resolver IdentityResolver
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

// NewGuard builds a Guard. audit may be nil.
func NewGuard(resolver IdentityResolver, audit ports.AuditRecorder, log zerolog.Logger) *Guard {
	return &Guard{resolver: resolver, audit: audit, log: log}
}

// Protect returns a loader that only runs load for an authenticated user
// whose stored role is in allowed. An empty allowed admits every
// authenticated user.
//
//   - no session, or the user no longer exists: redirect to /login
//   - store failure: the error is returned and the page fails with 500
//   - role not allowed: redirect to the role's landing page
//   - load redirects: that redirect is returned unchanged
//   - otherwise load's props are returned with the identity under UserKey
//
// A nil load yields the identity alone.
func (g *Guard) Protect(load Loader, allowed ...domain.Role) Loader {
	return func(c echo.Context) (Result, error) {
		page := c.Path()

		id, err := g.resolver.Resolve(c.Request().Context(), c.Request().Header)
		if err != nil {
			metrics.GuardDecisionsTotal.WithLabelValues(page, "error").Inc()
			g.log.Error().Err(err).Str("page", page).Msg("guard: identity lookup failed")
			return Result{}, fmt.Errorf("guard %s: %w", page, err)
		}
		if id == nil {
			metrics.GuardDecisionsTotal.WithLabelValues(page, "anonymous").Inc()
			return RedirectTo(domain.PathLogin), nil
		}

		if len(allowed) > 0 && !id.Role.In(allowed) {
			metrics.GuardDecisionsTotal.WithLabelValues(page, "forbidden").Inc()
			g.log.Info().Str("user_id", id.ID).Str("role", string(id.Role)).Str("page", page).Msg("guard: role not allowed")
			g.record(domain.AuditEvent{
				Kind:   domain.AuditAccessDenied,
				UserID: id.ID,
				Email:  id.Email,
				Role:   id.Role,
				Path:   page,
				IP:     c.RealIP(),
				At:     time.Now().UTC(),
			})
			return RedirectTo(domain.LandingPage(id.Role)), nil
		}

		metrics.GuardDecisionsTotal.WithLabelValues(page, "allowed").Inc()
		middleware.SetIdentity(c, id)

		if load == nil {
			return Render(Props{UserKey: id}), nil
		}

		res, err := load(c)
		if err != nil {
			return Result{}, err
		}
		if res.Redirect != nil {
			return res, nil
		}

		props := make(Props, len(res.Props)+1)
		for k, v := range res.Props {
			props[k] = v
		}
		props[UserKey] = id
		return Render(props), nil
	}
}

func (g *Guard) record(ev domain.AuditEvent) {
	if g.audit != nil {
		g.audit.Record(ev)
	}
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/api/metrics"
	"github.com/taskflow/taskboard/internal/auth"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// SessionReader reads the identity claimed by a request's session cookie
// without consulting the store.
type SessionReader interface {
	Extract(header http.Header) *domain.Identity
}

// CookieSettings controls the session cookie written on login.
type CookieSettings struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionReader
	audit       ports.AuditRecorder
	cookie      CookieSettings
	log         zerolog.Logger
}

// NewAuthHandler builds an AuthHandler. audit may be nil.
func NewAuthHandler(authService ports.AuthService, sessions SessionReader, audit ports.AuditRecorder, cookie CookieSettings, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, audit: audit, cookie: cookie, log: log}
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      405   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("missing_field").Inc()
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}

	email := domain.NormalizeEmail(req.Data.Email)
	result, err := h.authService.Login(c.Request().Context(), req.Data.Email, req.Data.Password)
	if err != nil {
		var fe *domain.FieldError
		switch {
		case errors.As(err, &fe):
			metrics.LoginAttemptsTotal.WithLabelValues("missing_field").Inc()
			return c.JSON(http.StatusBadRequest, errorBody{Error: fe.Message})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			h.record(c, domain.AuditLoginFailed, "", email, "")
			return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid credentials"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			h.record(c, domain.AuditLoginFailed, "", email, "")
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "too many attempts, try again later"})
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.record(c, domain.AuditLoginSucceeded, result.Identity.ID, result.Identity.Email, result.Identity.Role)

	c.SetCookie(auth.SessionCookie(result.Token, h.cookie.TTL, h.cookie.Secure))
	return c.JSON(http.StatusOK, loginResponse{Role: result.Identity.Role, RedirectTo: result.RedirectTo})
}

// Logout clears the session cookie. It always succeeds. The token itself
// stays valid until it expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.sessions != nil {
		if id := h.sessions.Extract(c.Request().Header); id != nil {
			h.record(c, domain.AuditLogout, id.ID, id.Email, id.Role)
		}
	}

	c.SetCookie(auth.ClearedSessionCookie(h.cookie.Secure))
	return c.JSON(http.StatusOK, logoutResponse{Success: true})
}

// Me returns the current user and their navigation menu.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorBody
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{User: *id, Menu: domain.MenuFor(id.Role)})
}

func (h *AuthHandler) record(c echo.Context, kind domain.AuditKind, userID, email string, role domain.Role) {
	if h.audit == nil {
		return
	}
	h.audit.Record(domain.AuditEvent{
		Kind:   kind,
		UserID: userID,
		Email:  email,
		Role:   role,
		Path:   c.Path(),
		IP:     c.RealIP(),
		At:     time.Now().UTC(),
	})
}

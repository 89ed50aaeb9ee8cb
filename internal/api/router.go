package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskflow/taskboard/docs"
	"github.com/taskflow/taskboard/internal/api/handler"
	"github.com/taskflow/taskboard/internal/api/middleware"
	"github.com/taskflow/taskboard/internal/api/page"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into routes.
type Deps struct {
	Log      zerolog.Logger
	Resolver middleware.IdentityResolver
	Pages    *page.Pages

	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Projects *handler.ProjectHandler
	Tasks    *handler.TaskHandler

	// Readiness checks, keyed by dependency name.
	Checks map[string]handlers.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("taskboard"))

	// --- Pages (guarded loaders) ---
	deps.Pages.Register(e)

	// --- Auth routes ---
	e.POST("/api/login", deps.Auth.Login)
	e.POST("/api/logout", deps.Auth.Logout)

	// Route-level middleware keeps 405 responses intact; a group with
	// middleware would register catch-all routes under /api.
	authed := middleware.Auth(deps.Resolver, deps.Log)
	admins := middleware.RBAC(domain.RoleAdministrator)
	managers := middleware.RBAC(domain.RoleAdministrator, domain.RoleProjectManager)

	e.GET("/api/me", deps.Auth.Me, authed)

	e.GET("/api/users", deps.Users.List, authed, admins)
	e.POST("/api/users", deps.Users.Create, authed, admins)
	e.PUT("/api/users/:id", deps.Users.Update, authed, admins)
	e.DELETE("/api/users/:id", deps.Users.Delete, authed, admins)

	e.GET("/api/projects", deps.Projects.List, authed)
	e.POST("/api/projects", deps.Projects.Create, authed, managers)
	e.PUT("/api/projects/:id", deps.Projects.Update, authed, managers)
	e.DELETE("/api/projects/:id", deps.Projects.Delete, authed, managers)

	e.GET("/api/tasks", deps.Tasks.List, authed)
	e.POST("/api/tasks", deps.Tasks.Create, authed)
	e.PUT("/api/tasks/:id", deps.Tasks.Update, authed)
	e.DELETE("/api/tasks/:id", deps.Tasks.Delete, authed)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

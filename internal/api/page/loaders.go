package page

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/api/middleware"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

const (
	dateLayout   = "02/01/2006"
	noAssignee   = "—"
	dashSubtitle = "System overview and key metrics"
)

// Services are the use cases page loaders read from.
type Services struct {
	Dashboard ports.DashboardService
	Projects  ports.ProjectService
	Users     ports.UserService
	Tasks     ports.TaskService
}

// Pages holds the loaders of every page of the board.
type Pages struct {
	guard    *Guard
	resolver IdentityResolver
	svc      Services
	log      zerolog.Logger
}

func NewPages(guard *Guard, resolver IdentityResolver, svc Services, log zerolog.Logger) *Pages {
	return &Pages{guard: guard, resolver: resolver, svc: svc, log: log}
}

// Register mounts the page routes on e.
func (p *Pages) Register(e *echo.Echo) {
	e.GET("/", Handler(p.guard.Protect(p.index)))
	e.GET(domain.PathLogin, Handler(p.login))
	e.GET(domain.PathDashboard, Handler(p.guard.Protect(p.dashboard)))
	e.GET(domain.PathProjects, Handler(p.guard.Protect(p.projects, domain.RoleAdministrator, domain.RoleProjectManager)))
	e.GET(domain.PathUsers, Handler(p.guard.Protect(p.users, domain.RoleAdministrator)))
	e.GET(domain.PathTasks, Handler(p.guard.Protect(p.tasks)))
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type projectRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	AssignedTo  string  `json:"assignedTo"`
	CreatedAt   string  `json:"createdAt"`
}

type userRow struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"createdAt"`
}

type taskCard struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	Column      string            `json:"column"`
	DueDate     string            `json:"dueDate"`
	ProjectID   *string           `json:"projectId"`
	AssignedTo  string            `json:"assignedTo"`
	Avatar      *string           `json:"avatar"`
}

func (p *Pages) index(c echo.Context) (Result, error) {
	return RedirectTo(domain.LandingPage(middleware.Identity(c).Role)), nil
}

// login is public. A signed-in user is sent to their landing page.
func (p *Pages) login(c echo.Context) (Result, error) {
	id, err := p.resolver.Resolve(c.Request().Context(), c.Request().Header)
	if err != nil {
		p.log.Warn().Err(err).Msg("login page: identity lookup failed, showing form")
		return Render(nil), nil
	}
	if id != nil {
		return RedirectTo(domain.LandingPage(id.Role)), nil
	}
	return Render(nil), nil
}

func (p *Pages) dashboard(c echo.Context) (Result, error) {
	id := middleware.Identity(c)
	chart, err := p.svc.Dashboard.Progress(c.Request().Context())
	if err != nil {
		return Result{}, err
	}
	return Render(Props{
		"chartData": chart,
		"title":     domain.RoleTitle(id.Role),
		"subtitle":  dashSubtitle,
		"menu":      domain.MenuFor(id.Role),
	}), nil
}

func (p *Pages) projects(c echo.Context) (Result, error) {
	ctx := c.Request().Context()
	projects, err := p.svc.Projects.List(ctx)
	if err != nil {
		return Result{}, err
	}
	users, err := p.svc.Users.List(ctx)
	if err != nil {
		return Result{}, err
	}

	rows := make([]projectRow, 0, len(projects))
	for _, pr := range projects {
		name := pr.AssignedTo.Name
		if name == "" {
			name = noAssignee
		}
		rows = append(rows, projectRow{
			ID:          pr.ID,
			Name:        pr.Name,
			Description: pr.Description,
			AssignedTo:  name,
			CreatedAt:   formatDate(pr.CreatedAt),
		})
	}
	return Render(Props{
		"projects": rows,
		"users":    userOptions(users),
		"menu":     domain.MenuFor(middleware.Identity(c).Role),
	}), nil
}

func (p *Pages) users(c echo.Context) (Result, error) {
	users, err := p.svc.Users.List(c.Request().Context())
	if err != nil {
		return Result{}, err
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: formatDate(u.CreatedAt)})
	}
	return Render(Props{
		"users": rows,
		"menu":  domain.MenuFor(middleware.Identity(c).Role),
	}), nil
}

func (p *Pages) tasks(c echo.Context) (Result, error) {
	ctx := c.Request().Context()
	tasks, err := p.svc.Tasks.List(ctx)
	if err != nil {
		return Result{}, err
	}
	projects, err := p.svc.Projects.List(ctx)
	if err != nil {
		return Result{}, err
	}
	users, err := p.svc.Users.List(ctx)
	if err != nil {
		return Result{}, err
	}

	cards := make([]taskCard, 0, len(tasks))
	for _, t := range tasks {
		card := taskCard{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Column:      t.Status.BoardLabel(),
			ProjectID:   t.ProjectID,
			AssignedTo:  noAssignee,
		}
		if t.DueDate != nil {
			card.DueDate = formatDate(*t.DueDate)
		}
		if t.AssignedTo != nil && t.AssignedTo.Name != "" {
			card.AssignedTo = t.AssignedTo.Name
			card.Avatar = t.AssignedTo.Image
		}
		cards = append(cards, card)
	}

	projectOpts := make([]option, 0, len(projects))
	for _, pr := range projects {
		projectOpts = append(projectOpts, option{Value: pr.ID, Label: pr.Name})
	}
	return Render(Props{
		"tasks":    cards,
		"projects": projectOpts,
		"users":    userOptions(users),
		"menu":     domain.MenuFor(middleware.Identity(c).Role),
	}), nil
}

func userOptions(users []*domain.User) []option {
	out := make([]option, 0, len(users))
	for _, u := range users {
		out = append(out, option{Value: u.ID, Label: u.Name})
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

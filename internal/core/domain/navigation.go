package domain

// Page routes served behind the access guard.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathUsers     = "/users"
	PathProjects  = "/projects"
	PathTasks     = "/tasks"
)

// MenuItem is a single entry of the role-dependent sidebar.
type MenuItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}

var (
	menuDashboard = MenuItem{Title: "Home", URL: PathDashboard, Icon: "home"}
	menuUsers     = MenuItem{Title: "Users", URL: PathUsers, Icon: "inbox"}
	menuProjects  = MenuItem{Title: "Projects", URL: PathProjects, Icon: "calendar"}
	menuTasks     = MenuItem{Title: "Tasks", URL: PathTasks, Icon: "search"}
)

// MenuFor returns the navigation entries visible to role. Unknown roles get
// an empty menu. This only drives navigation; route access is decided by the
// guard's own allow-lists.
func MenuFor(role Role) []MenuItem {
	switch role {
	case RoleAdministrator:
		return []MenuItem{menuDashboard, menuUsers, menuProjects, menuTasks}
	case RoleProjectManager:
		return []MenuItem{menuDashboard, menuProjects, menuTasks}
	case RoleCollaborator:
		return []MenuItem{menuDashboard, menuTasks}
	default:
		return []MenuItem{}
	}
}

// LandingPage is where a role is sent after login and after being bounced
// from a page its role may not open.
func LandingPage(role Role) string {
	switch role {
	case RoleAdministrator, RoleProjectManager, RoleCollaborator:
		return PathDashboard
	default:
		return PathLogin
	}
}

// RoleTitle is the panel header shown for role.
func RoleTitle(role Role) string {
	switch role {
	case RoleAdministrator:
		return "Administration panel"
	case RoleProjectManager:
		return "Management panel"
	case RoleCollaborator:
		return "Collaborator panel"
	default:
		return ""
	}
}

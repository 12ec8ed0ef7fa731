package client

import (
	"strings"

	"baseballnote/models"
)

const (
	LoginPath       = "/Login"
	PlayerHomePath  = "/Player/Home"
	CoachHomePath   = "/Coach/Home"
	defaultHomePath = "/"
)

// Route describes the access rule of a page.
type Route struct {
	AuthRequired bool
	RequiredRole *models.Role
}

type Decision struct {
	Allow    bool
	Loading  bool
	Redirect string
}

// Guard decides whether a page may be shown for a session state.
type Guard struct {
	PublicPaths []string
	// RolePrefixes maps a path prefix to the role every page under it requires.
	RolePrefixes map[string]models.Role
}

func DefaultGuard() *Guard {
	return &Guard{
		PublicPaths: []string{"/Login", "/login", "/CreateAccount", "/"},
		RolePrefixes: map[string]models.Role{
			"/Player/": models.RolePlayer,
			"/Coach/":  models.RoleCoach,
		},
	}
}

func (g *Guard) RouteFor(path string) Route {
	for _, p := range g.PublicPaths {
		if path == p {
			return Route{}
		}
	}
	for prefix, role := range g.RolePrefixes {
		if strings.HasPrefix(path, prefix) {
			r := role
			return Route{AuthRequired: true, RequiredRole: &r}
		}
	}
	return Route{AuthRequired: true}
}

// HomeFor is where a signed-in user lands when a page needs another role.
func HomeFor(role *models.Role) string {
	if role == nil {
		return defaultHomePath
	}
	switch *role {
	case models.RolePlayer:
		return PlayerHomePath
	case models.RoleCoach:
		return CoachHomePath
	default:
		return defaultHomePath
	}
}

func (g *Guard) Check(path string, state AuthState) Decision {
	if state.Loading {
		return Decision{Loading: true}
	}
	if strings.HasPrefix(path, "/login") && state.User != nil {
		return Decision{Redirect: defaultHomePath}
	}

	route := g.RouteFor(path)
	if route.AuthRequired && state.User == nil {
		return Decision{Redirect: LoginPath}
	}
	if route.RequiredRole != nil && (state.Role == nil || *state.Role != *route.RequiredRole) {
		return Decision{Redirect: HomeFor(state.Role)}
	}
	return Decision{Allow: true}
}

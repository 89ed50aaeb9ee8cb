package domain

import (
	"errors"
	"testing"
)

func menuURLs(items []MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.URL
	}
	return out
}

func TestMenuFor(t *testing.T) {
	cases := []struct {
		role Role
		want []string
	}{
		{RoleAdministrator, []string{PathDashboard, PathUsers, PathProjects, PathTasks}},
		{RoleProjectManager, []string{PathDashboard, PathProjects, PathTasks}},
		{RoleCollaborator, []string{PathDashboard, PathTasks}},
		{Role("Guest"), []string{}},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			got := menuURLs(MenuFor(tc.role))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestMenuFor_UnknownRoleIsNotNil(t *testing.T) {
	if MenuFor("") == nil {
		t.Fatal("expected an empty, non-nil menu")
	}
}

func TestLandingPage(t *testing.T) {
	for _, r := range Roles() {
		if got := LandingPage(r); got != PathDashboard {
			t.Fatalf("%s: expected %s, got %s", r, PathDashboard, got)
		}
	}
	if got := LandingPage("Guest"); got != PathLogin {
		t.Fatalf("unknown role: expected %s, got %s", PathLogin, got)
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("Colaborator"); err != nil || r != RoleCollaborator {
		t.Fatalf("expected Colaborator, got %q (%v)", r, err)
	}
	for _, bad := range []string{"", "Collaborator", "administrator", "Admin"} {
		if _, err := ParseRole(bad); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("%q: expected ErrInvalidRole, got %v", bad, err)
		}
	}
}

func TestRoleIn(t *testing.T) {
	allowed := []Role{RoleAdministrator, RoleProjectManager}
	if !RoleProjectManager.In(allowed) {
		t.Fatal("expected Project_Manager to be allowed")
	}
	if RoleCollaborator.In(allowed) {
		t.Fatal("expected Colaborator to be rejected")
	}
	if RoleAdministrator.In(nil) {
		t.Fatal("empty allow-list admits nobody")
	}
}

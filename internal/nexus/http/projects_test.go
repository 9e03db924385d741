package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/stretchr/testify/require"
)

func TestRoleMatrix(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	admin := ts.admin(t)
	createUser(t, admin, "lead", "Project Lead")
	createUser(t, admin, "dev", "Developer")

	pid, err := admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Skyline", Deadline: "2026-12-01"})
	require.NoError(t, err)

	clients := map[string]*nexusapi.Client{
		"anonymous": ts.client(t),
		"admin":     admin,
		"lead":      ts.loginAs(t, "lead", "lead-pw"),
		"dev":       ts.loginAs(t, "dev", "dev-pw"),
	}

	calls := map[string]func(c *nexusapi.Client) error{
		"create user": func(c *nexusapi.Client) error {
			_, err := c.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "newhire", Password: "pw", Role: "Developer"})
			return err
		},
		"list users": func(c *nexusapi.Client) error {
			_, err := c.ListUsers(ctx)
			return err
		},
		"create project": func(c *nexusapi.Client) error {
			_, err := c.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Other"})
			return err
		},
		"list projects": func(c *nexusapi.Client) error {
			_, err := c.ListProjects(ctx)
			return err
		},
		"complete project": func(c *nexusapi.Client) error {
			return c.CompleteProject(ctx, pid)
		},
	}

	tests := []struct {
		call   string
		client string
		status int
	}{
		{"create user", "anonymous", http.StatusUnauthorized},
		{"create user", "dev", http.StatusForbidden},
		{"create user", "lead", http.StatusForbidden},
		{"create user", "admin", 0},
		{"list users", "anonymous", http.StatusUnauthorized},
		{"list users", "lead", http.StatusForbidden},
		{"list users", "admin", 0},
		{"create project", "dev", http.StatusForbidden},
		{"create project", "lead", http.StatusForbidden},
		{"create project", "admin", 0},
		{"list projects", "anonymous", http.StatusUnauthorized},
		{"list projects", "dev", 0},
		{"complete project", "lead", http.StatusForbidden},
		{"complete project", "dev", http.StatusForbidden},
		{"complete project", "admin", 0},
	}

	for _, tt := range tests {
		t.Run(tt.call+"/"+tt.client, func(t *testing.T) {
			err := calls[tt.call](clients[tt.client])
			if tt.status == 0 {
				require.NoError(t, err)
				return
			}
			var apiErr *nexusapi.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestProjectAccess_FollowsAssignment(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	admin := ts.admin(t)
	createUser(t, admin, "lead", "Project Lead")
	dev := createUser(t, admin, "dev", "Developer")

	pid, err := admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Skyline", Description: "Open world"})
	require.NoError(t, err)
	_, err = admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Hidden"})
	require.NoError(t, err)

	lead := ts.loginAs(t, "lead", "lead-pw")
	devClient := ts.loginAs(t, "dev", "dev-pw")

	projects, err := devClient.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)

	_, err = devClient.Team(ctx, pid)
	requireAPIError(t, err, http.StatusForbidden, nexusapi.ErrorCodeForbidden)
	_, err = devClient.ListDocuments(ctx, pid)
	requireAPIError(t, err, http.StatusForbidden, nexusapi.ErrorCodeForbidden)

	err = devClient.AssignUser(ctx, pid, nexusapi.AssignRequest{UserID: dev.ID})
	requireAPIError(t, err, http.StatusForbidden, nexusapi.ErrorCodeForbidden)

	require.NoError(t, lead.AssignUser(ctx, pid, nexusapi.AssignRequest{UserID: dev.ID, RoleInProject: "Gameplay"}))
	err = admin.AssignUser(ctx, pid, nexusapi.AssignRequest{UserID: dev.ID})
	requireAPIError(t, err, http.StatusConflict, nexusapi.ErrorCodeAlreadyAssigned)

	projects, err = devClient.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Skyline", projects[0].Name)
	require.Equal(t, "Active", projects[0].Status)

	team, err := devClient.Team(ctx, pid)
	require.NoError(t, err)
	require.Len(t, team, 1)
	require.Equal(t, nexusapi.TeamMember{ID: dev.ID, Username: "dev", Role: "Developer", RoleInProject: "Gameplay"}, team[0])

	docs, err := devClient.ListDocuments(ctx, pid)
	require.NoError(t, err)
	require.Empty(t, docs)

	all, err := admin.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestProjectErrors(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	admin := ts.admin(t)
	dev := createUser(t, admin, "dev", "Developer")

	_, err := admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "  "})
	requireAPIError(t, err, http.StatusBadRequest, nexusapi.ErrorCodeInvalidRequest)

	err = admin.CompleteProject(ctx, "missing")
	requireAPIError(t, err, http.StatusNotFound, nexusapi.ErrorCodeNotFound)

	_, err = admin.Team(ctx, "missing")
	requireAPIError(t, err, http.StatusNotFound, nexusapi.ErrorCodeNotFound)

	err = admin.AssignUser(ctx, "missing", nexusapi.AssignRequest{UserID: dev.ID})
	requireAPIError(t, err, http.StatusNotFound, nexusapi.ErrorCodeNotFound)

	pid, err := admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Skyline"})
	require.NoError(t, err)

	err = admin.AssignUser(ctx, pid, nexusapi.AssignRequest{UserID: "ghost"})
	requireAPIError(t, err, http.StatusNotFound, nexusapi.ErrorCodeNotFound)
	err = admin.AssignUser(ctx, pid, nexusapi.AssignRequest{})
	requireAPIError(t, err, http.StatusBadRequest, nexusapi.ErrorCodeInvalidRequest)

	require.NoError(t, admin.CompleteProject(ctx, pid))
	require.NoError(t, admin.CompleteProject(ctx, pid))

	projects, err := admin.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, "Completed", projects[0].Status)
}

func TestCreateUser_Errors(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	admin := ts.admin(t)
	createUser(t, admin, "dev", "Developer")

	_, err := admin.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "DEV", Password: "x", Role: "Developer"})
	requireAPIError(t, err, http.StatusConflict, nexusapi.ErrorCodeUsernameTaken)

	_, err = admin.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "other", Password: "x", Role: "Manager"})
	requireAPIError(t, err, http.StatusBadRequest, nexusapi.ErrorCodeInvalidRequest)

	_, err = admin.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "other", Password: "", Role: "Developer"})
	requireAPIError(t, err, http.StatusBadRequest, nexusapi.ErrorCodeInvalidRequest)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

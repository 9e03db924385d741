package nexus_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// TestStudioWorkflow walks an Admin, a Project Lead and a Developer through
// a project's life.
func TestStudioWorkflow(t *testing.T) {
	ctx := t.Context()
	baseURL := setupNexusContainer(t, withEnv(relaxedLimits()))

	admin := login(t, baseURL, adminUsername, adminPassword)

	_, err := admin.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "lead", Password: "LeadPass1!", Role: "Project Lead"})
	require.NoError(t, err)
	dev, err := admin.CreateUser(ctx, nexusapi.CreateUserRequest{Username: "dev", Password: "DevPass1!", Role: "Developer"})
	require.NoError(t, err)

	pid, err := admin.CreateProject(ctx, nexusapi.CreateProjectRequest{Name: "Skyline", Deadline: "2026-12-01"})
	require.NoError(t, err)

	lead := login(t, baseURL, "lead", "LeadPass1!")
	devClient := login(t, baseURL, "dev", "DevPass1!")

	_, err = devClient.ListDocuments(ctx, pid)
	assertStatus(t, err, http.StatusForbidden)

	require.NoError(t, lead.AssignUser(ctx, pid, nexusapi.AssignRequest{UserID: dev.ID, RoleInProject: "Level design"}))

	doc, err := lead.UploadDocument(ctx, pid, "gdd.md", strings.NewReader("# Game design"))
	require.NoError(t, err)

	dl, err := devClient.DownloadDocument(ctx, doc.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(dl)
	_ = dl.Close()
	require.NoError(t, err)
	require.Equal(t, "# Game design", string(body))
	require.Equal(t, "gdd.md", dl.Filename)

	require.NoError(t, admin.CompleteProject(ctx, pid))
	projects, err := devClient.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Completed", projects[0].Status)
}

func TestMFAEnrollmentAndLogin(t *testing.T) {
	ctx := t.Context()
	baseURL := setupNexusContainer(t, withEnv(relaxedLimits()))

	admin := login(t, baseURL, adminUsername, adminPassword)

	setup, err := admin.SetupMFA(ctx)
	require.NoError(t, err)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, admin.VerifyMFA(ctx, code))
	require.NoError(t, admin.Logout(ctx))

	c := newClient(t, baseURL)
	res, err := c.Login(ctx, adminUsername, adminPassword, "")
	require.NoError(t, err)
	require.True(t, res.MFARequired)

	_, err = c.Me(ctx)
	assertStatus(t, err, http.StatusUnauthorized)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	res, err = c.Login(ctx, adminUsername, adminPassword, code)
	require.NoError(t, err)
	require.Equal(t, "Admin", res.User.Role)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.MFAEnabled)
}

// TestLoginRateLimit runs with production limits.
func TestLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	baseURL := setupNexusContainer(t)
	c := newClient(t, baseURL)

	var limited bool
	for range 10 {
		_, err := c.Login(ctx, adminUsername, "wrong", "")
		var apiErr *nexusapi.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}
	require.True(t, limited, "login should be rate limited")
}

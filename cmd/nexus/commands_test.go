package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("NEXUS_DATABASE_FILE", filepath.Join(dir, "nexus.db"))
	t.Setenv("NEXUS_PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("NEXUS_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "schema at version 1 (dirty=false)")
}

func TestUserCreateCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "user", "create", "--username", "lead1", "--password", "Lead123!", "--role", "project lead")
	require.NoError(t, err)
	require.Contains(t, out, "created lead1 (Project Lead)")
	require.NotContains(t, out, "password:")

	out, err = run(t, "user", "create", "--username", "dev1")
	require.NoError(t, err)
	require.Contains(t, out, "created dev1 (Developer)")
	require.Contains(t, out, "password: ")

	_, err = run(t, "user", "create", "--username", "lead1", "--password", "x")
	require.Error(t, err)

	_, err = run(t, "user", "create", "--username", "x", "--role", "Manager")
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := setupEnv(t)

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
	require.NoError(t, loadEnvFile(""))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("NEXUS_TEST_ONLY_VAR=from-file\n"), 0o600))
	t.Setenv("NEXUS_TEST_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("NEXUS_TEST_ONLY_VAR"))

	require.NoError(t, loadEnvFile(path))
	require.Equal(t, "from-file", strings.TrimSpace(os.Getenv("NEXUS_TEST_ONLY_VAR")))
}

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestRolesAndUsersCommands(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", filepath.Join(t.TempDir(), "directory.db"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "roles", "add", "--name", "")
	var verr *listing.ValidationError
	require.ErrorAs(t, err, &verr)

	adminID, err := run(t, "roles", "add", "--name", "Admin", "-p", "Read", "-p", "Write")
	require.NoError(t, err)
	require.NotEmpty(t, adminID)

	out, err := run(t, "roles", "edit", adminID, "--toggle", "Write", "--toggle", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Read, Delete")

	_, err = run(t, "roles", "edit", adminID, "--toggle", "Read", "--toggle", "Delete")
	require.Error(t, err, "a role cannot lose every permission")

	out, err = run(t, "users", "options")
	require.NoError(t, err)
	assert.Equal(t, "Admin", out)

	userID, err := run(t, "users", "add", "--role", "Admin", "--active")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	out, err = run(t, "users", "edit", userID, "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Active")

	out, err = run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, userID)

	require.NoError(t, runErr(run(t, "roles", "delete", adminID)))
	require.NoError(t, runErr(run(t, "roles", "delete", "missing")))

	out, err = run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin", "users keep the name of a deleted role")

	out, err = run(t, "roles", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, adminID)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "directory version "))
}

func TestUnknownPermissionFlag(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	_, err := run(t, "roles", "add", "--name", "x", "-p", "Execute")
	require.Error(t, err)
}

func runErr(_ string, err error) error { return err }

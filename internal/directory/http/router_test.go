package http_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	directoryhttp "github.com/aussiebroadwan/directory/internal/directory/http"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/memory"
	"github.com/aussiebroadwan/directory/pkg/adminsdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	st     *memory.Store
	server *httptest.Server
	client *adminsdk.Client
	roles  *service.RolesService
	users  *service.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	st := memory.NewStore()
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	roleRepo := store.NewCollection[domain.Role](st, store.KeyRoles, next)
	userRepo := store.NewCollection[domain.User](st, store.KeyUsers, next)

	roles := service.NewRolesService(roleRepo)
	users := service.NewUserService(userRepo, roleRepo)
	require.NoError(t, roles.Load(ctx))
	require.NoError(t, users.Load(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := directoryhttp.NewRouter("test", st, httpx.NewMetrics("directory_test"), logger)
	router.RolesService = roles
	router.UserService = users
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &env{st: st, server: server, client: adminsdk.NewClient(server.URL), roles: roles, users: users}
}

func TestRolesAPI(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	admin, err := e.client.CreateRole(ctx, adminsdk.RoleRequest{Name: "Admin", Permissions: []string{"Read", "write"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Read", "Write"}, admin.Permissions)

	_, err = e.client.CreateRole(ctx, adminsdk.RoleRequest{Name: "", Permissions: []string{"Read"}})
	require.True(t, adminsdk.IsValidationError(err), "got %v", err)
	var apiErr *adminsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, service.MsgRoleFormRequired, apiErr.Description)

	_, err = e.client.CreateRole(ctx, adminsdk.RoleRequest{Name: "Nobody"})
	require.True(t, adminsdk.IsValidationError(err))

	roles, err := e.client.ListRoles(ctx)
	require.NoError(t, err)
	require.Equal(t, []adminsdk.Role{*admin}, roles)

	updated, err := e.client.UpdateRole(ctx, admin.ID, adminsdk.RoleRequest{Name: "Admin", Permissions: []string{"Read"}})
	require.NoError(t, err)
	assert.Equal(t, adminsdk.Role{ID: admin.ID, Name: "Admin", Permissions: []string{"Read"}}, *updated)

	got, err := e.client.GetRole(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = e.client.UpdateRole(ctx, "missing", adminsdk.RoleRequest{Name: "x", Permissions: []string{"Read"}})
	require.True(t, adminsdk.IsNotFound(err))
	_, err = e.client.GetRole(ctx, "missing")
	require.True(t, adminsdk.IsNotFound(err))

	require.NoError(t, e.client.DeleteRole(ctx, admin.ID))
	require.NoError(t, e.client.DeleteRole(ctx, admin.ID), "deleting twice is a no-op")

	roles, err = e.client.ListRoles(ctx)
	require.NoError(t, err)
	assert.Empty(t, roles)

	raw, err := e.st.Get(ctx, store.KeyRoles)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRolesAPIRejectsMalformedBodies(t *testing.T) {
	e := newEnv(t)

	cases := map[string]string{
		"unknown permission": `{"name":"Admin","permissions":["Execute"]}`,
		"unknown field":      `{"name":"Admin","permissions":["Read"],"scopes":[]}`,
		"not json":           `name=Admin`,
		"oversized":          `{"name":"` + strings.Repeat("a", httpx.MaxBodyBytes) + `","permissions":["Read"]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(e.server.URL+"/v1/roles", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			raw, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(raw), `"error":"invalid_request"`)
		})
	}
}

func TestUsersAPI(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.client.CreateRole(ctx, adminsdk.RoleRequest{Name: "Admin", Permissions: []string{"Read"}})
	require.NoError(t, err)

	form, err := e.client.GetUserForm(ctx)
	require.NoError(t, err)
	assert.Empty(t, form.RoleOptions, "role options are a snapshot from load")
	assert.Equal(t, []string{"Read", "Write", "Delete"}, form.Permissions)

	require.NoError(t, e.client.ReloadUsers(ctx))
	form, err = e.client.GetUserForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, form.RoleOptions)

	blank, err := e.client.CreateUser(ctx, adminsdk.UserRequest{Role: "Admin", Active: true})
	require.NoError(t, err)
	assert.Equal(t, adminsdk.User{ID: blank.ID, Role: "Admin", Active: true}, *blank)

	ada, err := e.client.CreateUser(ctx, adminsdk.UserRequest{Name: "Ada", Email: "ada@example.com", Role: "Viewer"})
	require.NoError(t, err)
	assert.NotEqual(t, blank.ID, ada.ID)

	updated, err := e.client.UpdateUser(ctx, blank.ID, adminsdk.UserRequest{Name: "Grace", Email: "grace", Role: "Admin"})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	users, err := e.client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []adminsdk.User{*updated, *ada}, users)

	_, err = e.client.GetUser(ctx, "missing")
	require.True(t, adminsdk.IsNotFound(err))
	_, err = e.client.UpdateUser(ctx, "missing", adminsdk.UserRequest{})
	require.True(t, adminsdk.IsNotFound(err))

	require.NoError(t, e.client.DeleteUser(ctx, updated.ID))
	require.NoError(t, e.client.DeleteUser(ctx, "missing"))

	got, err := e.client.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, got)
}

func TestReloadReportsCorruptStore(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	require.NoError(t, e.st.Put(ctx, store.KeyUsers, []byte(`{`)))

	err := e.client.ReloadUsers(ctx)
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	live, err := e.client.GetLiveness(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", live.Status)
	assert.Equal(t, "test", live.Version)

	ready, err := e.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.NotNil(t, ready.Checks)
	assert.Equal(t, "ok", ready.Checks.Store)

	resp, err := http.Get(e.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `directory_test_http_requests_total{code="200",method="GET",route="GET /livez"} 1`)
}

func TestReadyzDegraded(t *testing.T) {
	e := newEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	directoryhttp.ReadyzHandler(time.Now(), "test", e.st).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestRequestIDHeader(t *testing.T) {
	e := newEnv(t)

	req, err := http.NewRequest(http.MethodGet, e.server.URL+"/v1/roles", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

package adminsdk

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g. "validation_error")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Roles
// ============================================================================

// Role is a named set of permissions.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// RoleRequest is the body of role create and update requests.
type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ListRolesResponse lists roles in display order.
type ListRolesResponse struct {
	Roles []Role `json:"roles"`
}

// ============================================================================
// Users
// ============================================================================

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// UserRequest is the body of user create and update requests.
type UserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// UserFormResponse describes the choices offered by the user form.
type UserFormResponse struct {
	// RoleOptions are the role names read at the last user directory load.
	RoleOptions []string `json:"role_options"`

	// Permissions lists every grantable permission.
	Permissions []string `json:"permissions"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Store indicates the storage backend status
	Store string `json:"store"`
}

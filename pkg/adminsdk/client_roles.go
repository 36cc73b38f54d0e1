package adminsdk

import (
	"context"
	"net/http"
)

// ListRoles returns every role in display order.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/roles", nil)
	if err != nil {
		return nil, err
	}

	var out ListRolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Roles, nil
}

func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/roles/"+escape(id), nil)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusOK); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole adds a role. The service assigns the id.
func (c *Client) CreateRole(ctx context.Context, req RoleRequest) (*Role, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/roles", req)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusCreated); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole replaces the name and permissions of role id.
func (c *Client) UpdateRole(ctx context.Context, id string, req RoleRequest) (*Role, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/v1/roles/"+escape(id), req)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusOK); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes role id. Deleting an unknown id succeeds.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/roles/"+escape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

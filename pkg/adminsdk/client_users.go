package adminsdk

import (
	"context"
	"net/http"
)

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users", nil)
	if err != nil {
		return nil, err
	}

	var out ListUsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/"+escape(id), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser adds a user. No field is required.
func (c *Client) CreateUser(ctx context.Context, req UserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/users", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/v1/users/"+escape(id), req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes user id. Deleting an unknown id succeeds.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/users/"+escape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetUserForm returns the role options and permissions offered by the user
// form.
func (c *Client) GetUserForm(ctx context.Context) (*UserFormResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/form", nil)
	if err != nil {
		return nil, err
	}

	var out UserFormResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReloadUsers re-reads the user directory and refreshes the role options.
func (c *Client) ReloadUsers(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/users/reload", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

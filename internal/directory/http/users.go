package http

import (
	"net/http"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/pkg/adminsdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles the list users endpoint
//
//	@Summary	List all users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	adminsdk.ListUsersResponse
//	@Router		/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := adminsdk.ListUsersResponse{
		Users: make([]adminsdk.User, len(users)),
	}
	for i, u := range users {
		response.Users[i] = toUserDTO(u)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet returns one user
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	adminsdk.User
//	@Failure	404	{object}	adminsdk.ErrorResponse	"User not found"
//	@Router		/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

// HandleCreate adds a user
//
//	@Summary		Create a user
//	@Description	No field is required and email format is not checked.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.UserRequest	true	"User"
//	@Success		201		{object}	adminsdk.User
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Malformed request"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), fromUserRequest(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserDTO(u))
}

// HandleUpdate edits a user in place
//
//	@Summary	Update a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID"
//	@Param		request	body		adminsdk.UserRequest	true	"User"
//	@Success	200		{object}	adminsdk.User
//	@Failure	404		{object}	adminsdk.ErrorResponse	"User not found"
//	@Router		/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.UserService.UpdateUser(r.Context(), r.PathValue("id"), fromUserRequest(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

// HandleDelete removes a user
//
//	@Summary		Delete a user
//	@Description	Unknown ids are ignored.
//	@Tags			Users
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleForm describes the user form
//
//	@Summary		User form options
//	@Description	Role names read at the last user directory load, plus the permission set.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	adminsdk.UserFormResponse
//	@Router			/v1/users/form [get].
func (h *UsersHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	perms := make([]string, len(domain.Permissions))
	for i, p := range domain.Permissions {
		perms[i] = string(p)
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.UserFormResponse{
		RoleOptions: h.UserService.RoleOptions(),
		Permissions: perms,
	})
}

// HandleReload re-reads users and role options
//
//	@Summary	Reload the user directory
//	@Tags		Users
//	@Success	204
//	@Failure	500	{object}	adminsdk.ErrorResponse	"Stored data could not be read"
//	@Router		/v1/users/reload [post].
func (h *UsersHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Load(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func fromUserRequest(req adminsdk.UserRequest) domain.User {
	return domain.User{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	}
}

func toUserDTO(u domain.User) adminsdk.User {
	return adminsdk.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Active: u.Active,
	}
}

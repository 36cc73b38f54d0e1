package http

import (
	"net/http"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/pkg/adminsdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns every role in display order.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	adminsdk.ListRolesResponse	"List of roles"
//	@Failure		500	{object}	adminsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := adminsdk.ListRolesResponse{
		Roles: make([]adminsdk.Role, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = toRoleDTO(role)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet returns one role
//
//	@Summary	Get a role
//	@Tags		Roles
//	@Produce	json
//	@Param		id	path		string	true	"Role ID"
//	@Success	200	{object}	adminsdk.Role
//	@Failure	404	{object}	adminsdk.ErrorResponse	"Role not found"
//	@Router		/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	role, err := h.RolesService.GetRoleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleDTO(role))
}

// HandleCreate adds a role
//
//	@Summary		Create a role
//	@Description	A role needs a name and at least one of Read, Write, Delete.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.RoleRequest	true	"Role"
//	@Success		201		{object}	adminsdk.Role
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Malformed request or missing name/permissions"
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	name, perms, ok := decodeRoleRequest(w, r)
	if !ok {
		return
	}

	role, err := h.RolesService.CreateRole(r.Context(), name, perms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRoleDTO(role))
}

// HandleUpdate edits a role in place
//
//	@Summary	Update a role
//	@Tags		Roles
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Role ID"
//	@Param		request	body		adminsdk.RoleRequest	true	"Role"
//	@Success	200		{object}	adminsdk.Role
//	@Failure	400		{object}	adminsdk.ErrorResponse	"Malformed request or missing name/permissions"
//	@Failure	404		{object}	adminsdk.ErrorResponse	"Role not found"
//	@Router		/v1/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	name, perms, ok := decodeRoleRequest(w, r)
	if !ok {
		return
	}

	role, err := h.RolesService.UpdateRole(r.Context(), r.PathValue("id"), name, perms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleDTO(role))
}

// HandleDelete removes a role
//
//	@Summary		Delete a role
//	@Description	Unknown ids are ignored. Users keep the role name they hold.
//	@Tags			Roles
//	@Param			id	path	string	true	"Role ID"
//	@Success		204
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RolesService.DeleteRole(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeRoleRequest(w http.ResponseWriter, r *http.Request) (string, []domain.Permission, bool) {
	var req adminsdk.RoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return "", nil, false
	}

	perms, err := domain.ParsePermissions(req.Permissions)
	if err != nil {
		writeBadRequest(w, "Permissions must be Read, Write or Delete")
		return "", nil, false
	}
	return req.Name, perms, true
}

func toRoleDTO(role domain.Role) adminsdk.Role {
	return adminsdk.Role{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: role.PermissionNames(),
	}
}

/*
Package adminsdk provides a client SDK for the directory admin service.

# Overview

The service keeps two directories, roles and users. A role carries a name and
a set of permissions drawn from Read, Write and Delete. A user carries a name,
an email, a role name and an active flag.

	client := adminsdk.NewClient("http://localhost:8080")

	role, err := client.CreateRole(ctx, adminsdk.RoleRequest{
		Name:        "Admin",
		Permissions: []string{"Read", "Write"},
	})

	opts, err := client.GetUserForm(ctx)
	user, err := client.CreateUser(ctx, adminsdk.UserRequest{
		Name:   "Ada",
		Email:  "ada@example.com",
		Role:   opts.RoleOptions[0],
		Active: true,
	})

# Errors

Every non-2xx response is returned as an *APIError. Roles missing a name or
permissions are rejected with ErrorCodeValidation; use IsValidationError to
tell them apart:

	if adminsdk.IsValidationError(err) {
		fmt.Println(err.(*adminsdk.APIError).Description)
	}

Users are never validated.

# Role options

The user form offers the role names read when the service last loaded its
user directory. Roles created since then are not offered until ReloadUsers is
called.
*/
package adminsdk

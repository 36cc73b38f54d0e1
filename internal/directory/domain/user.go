package domain

// User is a directory member. Role holds a role name as free text; it is not
// a foreign key and may outlive the role it was copied from.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

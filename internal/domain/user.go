package domain

import "time"

// Role is the account-level role controlling what a user may do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleTechnician Role = "technician"
	RoleSales      Role = "sales"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDispatcher, RoleTechnician, RoleSales:
		return true
	}
	return false
}

// User is an account member. ClerkID links the row to the external
// auth provider identity; authorization decisions use Role.
type User struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "First Last", tolerating either part being empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// BulkUserAction enumerates the operations the bulk users endpoint
// supports.
type BulkUserAction string

const (
	BulkActionActivate   BulkUserAction = "activate"
	BulkActionDeactivate BulkUserAction = "deactivate"
	BulkActionSetRole    BulkUserAction = "set_role"
)

// BulkUserResult reports the outcome for one user in a bulk action.
type BulkUserResult struct {
	UserID string `json:"user_id"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

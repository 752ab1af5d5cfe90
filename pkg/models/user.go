package models

// User represents a registered account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // 'user' or 'admin'
	// Password is only present for the admin account. It is stored in clear
	// text for parity with the existing deployment; the /admin-credentials
	// endpoint exposes it. Keep it out of logs (see pkg/logging).
	Password string `json:"password,omitempty"`
}

// Role constants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole checks if the given role is valid.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

package entity

import "time"

// User roles understood by the authorization layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account.
// PasswordHash is a bcrypt hash and must never be serialized to clients.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	Role              string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

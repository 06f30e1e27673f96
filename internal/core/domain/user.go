package domain

import "time"

// UserRole describes the platform-wide role of a user account.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
)

// User represents a staff account (teacher or administrator) of the platform.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token state; only the hash is ever stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

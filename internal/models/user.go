package models

import (
	"database/sql"
	"time"
)

// UserRole mirrors domain.UserRole at the persistence layer.
type UserRole string

// User represents a staff account row.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username" db:"username"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role" db:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

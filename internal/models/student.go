package models

import "time"

// Student represents a learner row.
type Student struct {
	StudentID string `json:"studentID" db:"student_id"`
	FullName  string `json:"fullName" db:"full_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

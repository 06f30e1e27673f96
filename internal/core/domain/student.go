package domain

import "time"

// Student represents a learner's administrative record.
// Students do not log in to this service; they are managed by teachers/admins.
type Student struct {
	StudentID string `json:"studentID"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

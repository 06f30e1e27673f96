package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollmentStatus mirrors domain.EnrollmentStatus.
type EnrollmentStatus string

// Enrollment represents an enrollment row.
type Enrollment struct {
	EnrollmentID string           `json:"enrollmentID" db:"enrollment_id"`
	StudentID    string           `json:"studentID" db:"student_id"`
	ProgramID    string           `json:"programID" db:"program_id"`
	TotalAmount  decimal.Decimal  `json:"totalAmount" db:"total_amount"`
	PaidAmount   decimal.Decimal  `json:"paidAmount" db:"paid_amount"`
	Status       EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt   time.Time        `json:"enrolledAt" db:"enrolled_at"`
	AuditFields
}

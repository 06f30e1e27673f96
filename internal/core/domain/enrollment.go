package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollmentStatus is the derived payment state of an enrollment.
type EnrollmentStatus string

const (
	// EnrollmentPending means no payment has been recorded yet.
	EnrollmentPending EnrollmentStatus = "PENDING"
	// EnrollmentPartial means some but not all of the total has been paid.
	EnrollmentPartial EnrollmentStatus = "PARTIAL"
	// EnrollmentCompleted means the cumulative paid amount covers the total.
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	// EnrollmentExcused is a distinguishable partial state: the latest payment
	// fell short but carries an excuse awaiting teacher review.
	EnrollmentExcused EnrollmentStatus = "EXCUSED"
)

// Enrollment represents a student's commitment to a training program.
// PaidAmount and Status are derived from the enrollment's tranches and are
// only ever written by the payment workflow.
type Enrollment struct {
	EnrollmentID string           `json:"enrollmentID"` // Primary Key (UUID)
	StudentID    string           `json:"studentID"`
	ProgramID    string           `json:"programID"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"` // Snapshot of the program total at enrollment time
	PaidAmount   decimal.Decimal  `json:"paidAmount"`
	Status       EnrollmentStatus `json:"status"`
	EnrolledAt   time.Time        `json:"enrolledAt"`
	AuditFields
}

// DeriveEnrollmentStatus recomputes an enrollment's status from its total,
// the cumulative paid amount, and the tranche mutated by the triggering
// payment (nil when no payment triggered the recompute).
//
// A zero or negative total can never reach COMPLETED through payments; that
// configuration is rejected at program creation, not here.
func DeriveEnrollmentStatus(totalAmount, totalPaid decimal.Decimal, trigger *Tranche) EnrollmentStatus {
	if totalAmount.IsPositive() && totalPaid.GreaterThanOrEqual(totalAmount) {
		return EnrollmentCompleted
	}
	if totalPaid.IsPositive() {
		if trigger != nil && trigger.HasPendingExcuse() {
			return EnrollmentExcused
		}
		return EnrollmentPartial
	}
	return EnrollmentPending
}

// SumPaid returns the cumulative actual amount over all paid tranches.
func SumPaid(tranches []Tranche) decimal.Decimal {
	total := decimal.Zero
	for i := range tranches {
		if tranches[i].IsPaid() {
			total = total.Add(*tranches[i].ActualAmount)
		}
	}
	return total
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExcuseStatus is the review state of an underpayment excuse on a tranche.
// It is empty when no excuse was requested, so "no excuse" and "excuse pending
// review" are never conflated.
type ExcuseStatus string

const (
	ExcusePending  ExcuseStatus = "PENDING"
	ExcuseApproved ExcuseStatus = "APPROVED"
	ExcuseRejected ExcuseStatus = "REJECTED"
)

// Tranche represents one installment of an enrollment's payment plan.
// Planned tranches are generated from the program schedule at enrollment time
// with no actual amount; ad-hoc tranches are created directly from a payment
// that targets no planned tranche.
type Tranche struct {
	TrancheID       string          `json:"trancheID"` // Primary Key (UUID)
	EnrollmentID    string          `json:"enrollmentID"`
	ExpectedAmount  decimal.Decimal `json:"expectedAmount"`
	ExpectedPercent decimal.Decimal `json:"expectedPercent"` // Percent of the enrollment total
	DueDate         time.Time       `json:"dueDate"`

	// Payment facts; ActualAmount and PaidAt are set together or not at all.
	ActualAmount  *decimal.Decimal `json:"actualAmount,omitempty"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	Reference     string           `json:"reference,omitempty"` // External transaction reference
	ReceivedBy    string           `json:"receivedBy,omitempty"`
	Notes         string           `json:"notes,omitempty"`

	// Excuse state; ExcuseReason and ExcuseStatus are unset when HasExcuse is false.
	HasExcuse    bool         `json:"hasExcuse"`
	ExcuseReason string       `json:"excuseReason,omitempty"`
	ExcuseStatus ExcuseStatus `json:"excuseStatus,omitempty"`

	AuditFields
}

// IsPaid reports whether a payment has been recorded against this tranche.
func (t *Tranche) IsPaid() bool {
	return t.PaidAt != nil && t.ActualAmount != nil
}

// HasPendingExcuse reports whether the tranche carries an excuse awaiting a
// teacher decision.
func (t *Tranche) HasPendingExcuse() bool {
	return t.HasExcuse && t.ExcuseStatus == ExcusePending
}

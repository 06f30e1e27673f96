package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExcuseStatus mirrors domain.ExcuseStatus; stored as a nullable text column.
type ExcuseStatus string

// Tranche represents a payment-ledger row.
type Tranche struct {
	TrancheID       string          `json:"trancheID" db:"tranche_id"`
	EnrollmentID    string          `json:"enrollmentID" db:"enrollment_id"`
	ExpectedAmount  decimal.Decimal `json:"expectedAmount" db:"expected_amount"`
	ExpectedPercent decimal.Decimal `json:"expectedPercent" db:"expected_percent"`
	DueDate         time.Time       `json:"dueDate" db:"due_date"`

	ActualAmount  *decimal.Decimal `json:"actualAmount,omitempty" db:"actual_amount"`
	PaidAt        *time.Time       `json:"paidAt,omitempty" db:"paid_at"`
	PaymentMethod string           `json:"paymentMethod,omitempty" db:"payment_method"`
	Reference     string           `json:"reference,omitempty" db:"reference"`
	ReceivedBy    string           `json:"receivedBy,omitempty" db:"received_by"`
	Notes         string           `json:"notes,omitempty" db:"notes"`

	HasExcuse    bool         `json:"hasExcuse" db:"has_excuse"`
	ExcuseReason string       `json:"excuseReason,omitempty" db:"excuse_reason"`
	ExcuseStatus ExcuseStatus `json:"excuseStatus,omitempty" db:"excuse_status"`

	AuditFields
}

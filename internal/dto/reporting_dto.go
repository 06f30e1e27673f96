package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgramPaymentSummaryResponse aggregates the payment state of a program.
type ProgramPaymentSummaryResponse struct {
	ProgramID        string          `json:"programID"`
	CurrencyCode     string          `json:"currencyCode"`
	EnrollmentCount  int             `json:"enrollmentCount"`
	TotalExpected    decimal.Decimal `json:"totalExpected"`  // Sum of enrollment totals
	TotalCollected   decimal.Decimal `json:"totalCollected"` // Sum of paid amounts
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	// Enrollment counts keyed by status (PENDING/PARTIAL/COMPLETED/EXCUSED).
	StatusCounts    map[string]int `json:"statusCounts"`
	OverdueTranches int            `json:"overdueTranches"` // Unpaid planned tranches past their due date
	GeneratedAt     time.Time      `json:"generatedAt"`
}

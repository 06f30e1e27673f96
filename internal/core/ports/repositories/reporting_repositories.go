package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// ProgramPaymentAggregate holds the raw aggregates behind a program summary.
type ProgramPaymentAggregate struct {
	EnrollmentCount int
	TotalExpected   decimal.Decimal
	TotalCollected  decimal.Decimal
	StatusCounts    map[domain.EnrollmentStatus]int
	OverdueTranches int
}

// ReportingRepository defines operations for retrieving payment report data
type ReportingRepository interface {
	// GetProgramPaymentAggregate computes payment aggregates for a program.
	// Overdue counts unpaid tranches whose due date is before asOf.
	GetProgramPaymentAggregate(ctx context.Context, programID string, asOf time.Time) (*ProgramPaymentAggregate, error)
}

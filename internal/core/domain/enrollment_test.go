package domain_test

import (
	"testing"
	"time"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestDeriveEnrollmentStatus(t *testing.T) {
	total := decimal.NewFromInt(300000)

	tests := []struct {
		name      string
		totalPaid decimal.Decimal
		trigger   *domain.Tranche
		want      domain.EnrollmentStatus
	}{
		{
			name:      "nothing paid",
			totalPaid: decimal.Zero,
			trigger:   nil,
			want:      domain.EnrollmentPending,
		},
		{
			name:      "partial payment",
			totalPaid: decimal.NewFromInt(90000),
			trigger:   &domain.Tranche{},
			want:      domain.EnrollmentPartial,
		},
		{
			name:      "paid exactly the total",
			totalPaid: decimal.NewFromInt(300000),
			trigger:   &domain.Tranche{},
			want:      domain.EnrollmentCompleted,
		},
		{
			name:      "paid more than the total",
			totalPaid: decimal.NewFromInt(310000),
			trigger:   nil,
			want:      domain.EnrollmentCompleted,
		},
		{
			name:      "partial with pending excuse on the triggering tranche",
			totalPaid: decimal.NewFromInt(20000),
			trigger: &domain.Tranche{
				HasExcuse:    true,
				ExcuseStatus: domain.ExcusePending,
			},
			want: domain.EnrollmentExcused,
		},
		{
			name:      "partial with an already approved excuse",
			totalPaid: decimal.NewFromInt(20000),
			trigger: &domain.Tranche{
				HasExcuse:    true,
				ExcuseStatus: domain.ExcuseApproved,
			},
			want: domain.EnrollmentPartial,
		},
		{
			name:      "pending excuse cannot hold back a completed enrollment",
			totalPaid: decimal.NewFromInt(300000),
			trigger: &domain.Tranche{
				HasExcuse:    true,
				ExcuseStatus: domain.ExcusePending,
			},
			want: domain.EnrollmentCompleted,
		},
		{
			name:      "recompute without a triggering tranche stays partial",
			totalPaid: decimal.NewFromInt(150000),
			trigger:   nil,
			want:      domain.EnrollmentPartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveEnrollmentStatus(total, tt.totalPaid, tt.trigger)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveEnrollmentStatus_ZeroTotal(t *testing.T) {
	// A non-positive total never reaches COMPLETED, whatever was paid
	got := domain.DeriveEnrollmentStatus(decimal.Zero, decimal.NewFromInt(500), nil)
	assert.Equal(t, domain.EnrollmentPartial, got)

	got = domain.DeriveEnrollmentStatus(decimal.Zero, decimal.Zero, nil)
	assert.Equal(t, domain.EnrollmentPending, got)
}

func TestSumPaid(t *testing.T) {
	now := time.Now()
	tranches := []domain.Tranche{
		{
			ActualAmount: decimalPtr(decimal.NewFromInt(90000)),
			PaidAt:       timePtr(now),
		},
		{
			// Planned, unpaid
			ExpectedAmount: decimal.NewFromInt(105000),
		},
		{
			ActualAmount: decimalPtr(decimal.NewFromInt(20000)),
			PaidAt:       timePtr(now),
		},
	}

	assert.True(t, decimal.NewFromInt(110000).Equal(domain.SumPaid(tranches)))
	assert.True(t, domain.SumPaid(nil).IsZero())
}

func TestTranche_HasPendingExcuse(t *testing.T) {
	assert.False(t, (&domain.Tranche{}).HasPendingExcuse())
	assert.False(t, (&domain.Tranche{HasExcuse: true, ExcuseStatus: domain.ExcuseRejected}).HasPendingExcuse())
	assert.True(t, (&domain.Tranche{HasExcuse: true, ExcuseStatus: domain.ExcusePending}).HasPendingExcuse())
}

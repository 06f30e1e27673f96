package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// PaymentSvcFacade is the only legitimate writer of an enrollment's paid
// amount and derived status after creation.
type PaymentSvcFacade interface {
	// RecordPayment applies a payment to an enrollment, mutating or creating a
	// tranche and recomputing the enrollment aggregate atomically.
	RecordPayment(ctx context.Context, enrollmentID string, req dto.RecordPaymentRequest, actorUserID string) (*domain.Tranche, decimal.Decimal, domain.EnrollmentStatus, error)

	// DecideExcuse resolves a pending excuse on a tranche. It is a
	// record-keeping act: payment facts and the enrollment's derived status
	// are left untouched.
	DecideExcuse(ctx context.Context, trancheID string, req dto.DecideExcuseRequest, actorUserID string) (*domain.Tranche, error)
}

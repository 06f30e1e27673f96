package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
}

// NewPaymentService creates a new payment service with the provided dependencies
func NewPaymentService(
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	programAuthorizer portssvc.ProgramAuthorizerSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:    BaseService{ProgramAuthorizer: programAuthorizer},
		enrollmentRepo: enrollmentRepo,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment applies a payment to an enrollment. The tranche mutation, paid
// sum recompute and status derivation run in one repository transaction, so
// concurrent payments against the same enrollment serialize instead of losing
// updates.
func (s *paymentService) RecordPayment(ctx context.Context, enrollmentID string, req dto.RecordPaymentRequest, actorUserID string) (*domain.Tranche, decimal.Decimal, domain.EnrollmentStatus, error) {
	if enrollmentID == "" {
		return nil, decimal.Zero, "", fmt.Errorf("%w: enrollment ID is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, decimal.Zero, "", fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.HasExcuse && req.ExcuseReason == "" {
		return nil, decimal.Zero, "", fmt.Errorf("%w: an excuse needs a reason", apperrors.ErrValidation)
	}

	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	if err := s.AuthorizeTeacher(ctx, actorUserID, enrollment.ProgramID, domain.ProgramRoleAssistant); err != nil {
		return nil, decimal.Zero, "", err
	}

	now := time.Now()
	payment := portsrepo.PaymentApplication{
		Amount:          req.Amount,
		TargetTrancheID: req.TrancheID,
		PaidAt:          now,
		PaymentMethod:   req.PaymentMethod,
		Reference:       req.Reference,
		ReceivedBy:      req.ReceivedBy,
		Notes:           req.Notes,
		HasExcuse:       req.HasExcuse,
		ExcuseReason:    req.ExcuseReason,
		ActorUserID:     actorUserID,
	}
	if req.TrancheID == nil {
		payment.AdHocTranche = buildAdHocTranche(enrollment, req, actorUserID, now)
	}

	result, err := s.enrollmentRepo.ApplyPayment(ctx, enrollmentID, payment)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to apply payment", slog.String("enrollment_id", enrollmentID))
		}
		return nil, decimal.Zero, "", err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("enrollment_id", enrollmentID),
		slog.String("tranche_id", result.Tranche.TrancheID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(result.Status)))
	return &result.Tranche, result.TotalPaid, result.Status, nil
}

// buildAdHocTranche constructs the tranche inserted for a payment that
// targets no planned tranche. Its expected side mirrors the paid amount; the
// expected percent is the amount's share of the enrollment total.
func buildAdHocTranche(enrollment *domain.Enrollment, req dto.RecordPaymentRequest, actorUserID string, now time.Time) *domain.Tranche {
	amount := req.Amount
	expectedPercent := decimal.Zero
	if enrollment.TotalAmount.IsPositive() {
		expectedPercent = amount.Div(enrollment.TotalAmount).Mul(oneHundred)
		// Overpayments cap at 100 so the share always fits its column
		if expectedPercent.GreaterThan(oneHundred) {
			expectedPercent = oneHundred
		}
	}

	tranche := &domain.Tranche{
		TrancheID:       uuid.NewString(),
		EnrollmentID:    enrollment.EnrollmentID,
		ExpectedAmount:  amount,
		ExpectedPercent: expectedPercent,
		DueDate:         now,
		ActualAmount:    &amount,
		PaidAt:          &now,
		PaymentMethod:   req.PaymentMethod,
		Reference:       req.Reference,
		ReceivedBy:      req.ReceivedBy,
		Notes:           req.Notes,
		HasExcuse:       req.HasExcuse,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if req.HasExcuse {
		tranche.ExcuseReason = req.ExcuseReason
		tranche.ExcuseStatus = domain.ExcusePending
	}
	return tranche
}

// DecideExcuse resolves a pending excuse on a tranche. It only records the
// decision; the enrollment's paid amount and status are untouched, so an
// EXCUSED enrollment stays EXCUSED until the next payment recomputes it.
func (s *paymentService) DecideExcuse(ctx context.Context, trancheID string, req dto.DecideExcuseRequest, actorUserID string) (*domain.Tranche, error) {
	if req.Approved == nil {
		return nil, fmt.Errorf("%w: decision is required", apperrors.ErrValidation)
	}

	tranche, err := s.enrollmentRepo.FindTrancheByID(ctx, trancheID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, tranche.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeTeacher(ctx, actorUserID, enrollment.ProgramID, domain.ProgramRoleAssistant); err != nil {
		return nil, err
	}
	if !tranche.HasExcuse {
		return nil, fmt.Errorf("%w: tranche has no excuse to decide", apperrors.ErrValidation)
	}

	decision := domain.ExcuseRejected
	if *req.Approved {
		decision = domain.ExcuseApproved
	}

	// Repeating an identical decision is a no-op
	if tranche.ExcuseStatus == decision {
		return tranche, nil
	}

	now := time.Now()
	if err := s.enrollmentRepo.UpdateTrancheExcuse(ctx, trancheID, decision, req.Notes, actorUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record excuse decision", slog.String("tranche_id", trancheID))
		}
		return nil, err
	}

	tranche.ExcuseStatus = decision
	if req.Notes != "" {
		tranche.Notes = req.Notes
	}
	tranche.LastUpdatedAt = now
	tranche.LastUpdatedBy = actorUserID

	s.LogInfo(ctx, "Excuse decided",
		slog.String("tranche_id", trancheID),
		slog.String("decision", string(decision)))
	return tranche, nil
}

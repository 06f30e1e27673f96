package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/core/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockEnrollmentRepo *MockEnrollmentRepository
	mockAuthorizer     *MockProgramAuthorizer
	service            portssvc.PaymentSvcFacade
	enrollment         domain.Enrollment
	actorUserID        string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockAuthorizer = new(MockProgramAuthorizer)
	suite.service = services.NewPaymentService(suite.mockEnrollmentRepo, suite.mockAuthorizer)

	suite.actorUserID = uuid.NewString()
	suite.enrollment = domain.Enrollment{
		EnrollmentID: uuid.NewString(),
		StudentID:    uuid.NewString(),
		ProgramID:    uuid.NewString(),
		TotalAmount:  decimal.NewFromInt(300000),
		PaidAmount:   decimal.Zero,
		Status:       domain.EnrollmentPending,
		EnrolledAt:   time.Now(),
	}
}

func (suite *PaymentServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.actorUserID, suite.enrollment.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AdHocPartial() {
	amount := decimal.NewFromInt(90000)
	req := dto.RecordPaymentRequest{Amount: amount, PaymentMethod: "cash"}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	suite.mockEnrollmentRepo.On("ApplyPayment", mock.Anything, suite.enrollment.EnrollmentID,
		mock.MatchedBy(func(p portsrepo.PaymentApplication) bool {
			// No target tranche, so a fully formed ad-hoc tranche must be attached
			return p.TargetTrancheID == nil &&
				p.AdHocTranche != nil &&
				p.AdHocTranche.ExpectedAmount.Equal(amount) &&
				p.AdHocTranche.ActualAmount != nil &&
				p.AdHocTranche.ActualAmount.Equal(amount) &&
				p.AdHocTranche.ExpectedPercent.Equal(decimal.NewFromInt(30)) &&
				p.ActorUserID == suite.actorUserID
		}),
	).Return(&portsrepo.PaymentResult{
		Tranche:   domain.Tranche{TrancheID: uuid.NewString(), EnrollmentID: suite.enrollment.EnrollmentID, ActualAmount: decimalPtr(amount)},
		TotalPaid: amount,
		Status:    domain.EnrollmentPartial,
	}, nil).Once()

	tranche, totalPaid, status, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.NoError(err)
	suite.NotNil(tranche)
	suite.True(totalPaid.Equal(amount))
	suite.Equal(domain.EnrollmentPartial, status)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AdHocOverpaymentCapsPercent() {
	// Far more than the enrollment total; the share still caps at 100
	amount := decimal.NewFromInt(4000000)
	req := dto.RecordPaymentRequest{Amount: amount}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	suite.mockEnrollmentRepo.On("ApplyPayment", mock.Anything, suite.enrollment.EnrollmentID,
		mock.MatchedBy(func(p portsrepo.PaymentApplication) bool {
			return p.AdHocTranche != nil &&
				p.AdHocTranche.ExpectedPercent.Equal(decimal.NewFromInt(100))
		}),
	).Return(&portsrepo.PaymentResult{
		Tranche:   domain.Tranche{TrancheID: uuid.NewString(), EnrollmentID: suite.enrollment.EnrollmentID, ActualAmount: decimalPtr(amount)},
		TotalPaid: amount,
		Status:    domain.EnrollmentCompleted,
	}, nil).Once()

	_, _, status, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(domain.EnrollmentCompleted, status)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_TargetedTrancheCompletes() {
	trancheID := uuid.NewString()
	amount := decimal.NewFromInt(210000)
	req := dto.RecordPaymentRequest{Amount: amount, TrancheID: &trancheID}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	suite.mockEnrollmentRepo.On("ApplyPayment", mock.Anything, suite.enrollment.EnrollmentID,
		mock.MatchedBy(func(p portsrepo.PaymentApplication) bool {
			return p.TargetTrancheID != nil && *p.TargetTrancheID == trancheID && p.AdHocTranche == nil
		}),
	).Return(&portsrepo.PaymentResult{
		Tranche:   domain.Tranche{TrancheID: trancheID, EnrollmentID: suite.enrollment.EnrollmentID, ActualAmount: decimalPtr(amount)},
		TotalPaid: decimal.NewFromInt(300000),
		Status:    domain.EnrollmentCompleted,
	}, nil).Once()

	tranche, totalPaid, status, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(trancheID, tranche.TrancheID)
	suite.True(totalPaid.Equal(decimal.NewFromInt(300000)))
	suite.Equal(domain.EnrollmentCompleted, status)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_WithExcuse() {
	amount := decimal.NewFromInt(20000)
	req := dto.RecordPaymentRequest{
		Amount:       amount,
		HasExcuse:    true,
		ExcuseReason: "family hardship, remainder next month",
	}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	suite.mockEnrollmentRepo.On("ApplyPayment", mock.Anything, suite.enrollment.EnrollmentID,
		mock.MatchedBy(func(p portsrepo.PaymentApplication) bool {
			// The ad-hoc tranche carries the pending excuse into the transaction
			return p.HasExcuse &&
				p.AdHocTranche != nil &&
				p.AdHocTranche.HasExcuse &&
				p.AdHocTranche.ExcuseStatus == domain.ExcusePending &&
				p.AdHocTranche.ExcuseReason == req.ExcuseReason
		}),
	).Return(&portsrepo.PaymentResult{
		Tranche: domain.Tranche{
			TrancheID:    uuid.NewString(),
			EnrollmentID: suite.enrollment.EnrollmentID,
			ActualAmount: decimalPtr(amount),
			HasExcuse:    true,
			ExcuseStatus: domain.ExcusePending,
		},
		TotalPaid: amount,
		Status:    domain.EnrollmentExcused,
	}, nil).Once()

	tranche, _, status, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(domain.EnrollmentExcused, status)
	suite.Equal(domain.ExcusePending, tranche.ExcuseStatus)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	req := dto.RecordPaymentRequest{Amount: decimal.Zero}

	_, _, _, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "ApplyPayment")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsExcuseWithoutReason() {
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), HasExcuse: true}

	_, _, _, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "FindEnrollmentByID")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ForbiddenWhenNotStaffed() {
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100)}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.actorUserID, suite.enrollment.ProgramID, domain.ProgramRoleAssistant).
		Return(apperrors.ErrForbidden).Once()

	_, _, _, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "ApplyPayment")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_TrancheOfOtherEnrollmentIsNotFound() {
	trancheID := uuid.NewString()
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), TrancheID: &trancheID}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()
	suite.mockEnrollmentRepo.On("ApplyPayment", mock.Anything, suite.enrollment.EnrollmentID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, _, err := suite.service.RecordPayment(context.Background(), suite.enrollment.EnrollmentID, req, suite.actorUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) trancheWithPendingExcuse() *domain.Tranche {
	now := time.Now()
	return &domain.Tranche{
		TrancheID:    uuid.NewString(),
		EnrollmentID: suite.enrollment.EnrollmentID,
		ActualAmount: decimalPtr(decimal.NewFromInt(20000)),
		PaidAt:       timePtr(now),
		HasExcuse:    true,
		ExcuseReason: "family hardship",
		ExcuseStatus: domain.ExcusePending,
	}
}

func (suite *PaymentServiceTestSuite) TestDecideExcuse_Approve() {
	tranche := suite.trancheWithPendingExcuse()
	req := dto.DecideExcuseRequest{Approved: boolPtr(true), Notes: "verified with the family"}

	suite.mockEnrollmentRepo.On("FindTrancheByID", mock.Anything, tranche.TrancheID).
		Return(tranche, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()
	suite.mockEnrollmentRepo.On("UpdateTrancheExcuse", mock.Anything, tranche.TrancheID, domain.ExcuseApproved, req.Notes, suite.actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.DecideExcuse(context.Background(), tranche.TrancheID, req, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(domain.ExcuseApproved, updated.ExcuseStatus)
	// Payment facts are untouched by the decision
	suite.True(updated.ActualAmount.Equal(decimal.NewFromInt(20000)))
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDecideExcuse_RepeatedDecisionIsNoOp() {
	tranche := suite.trancheWithPendingExcuse()
	tranche.ExcuseStatus = domain.ExcuseApproved

	suite.mockEnrollmentRepo.On("FindTrancheByID", mock.Anything, tranche.TrancheID).
		Return(tranche, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	updated, err := suite.service.DecideExcuse(context.Background(), tranche.TrancheID, dto.DecideExcuseRequest{Approved: boolPtr(true)}, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(domain.ExcuseApproved, updated.ExcuseStatus)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "UpdateTrancheExcuse")
}

func (suite *PaymentServiceTestSuite) TestDecideExcuse_Reject() {
	tranche := suite.trancheWithPendingExcuse()

	suite.mockEnrollmentRepo.On("FindTrancheByID", mock.Anything, tranche.TrancheID).
		Return(tranche, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()
	suite.mockEnrollmentRepo.On("UpdateTrancheExcuse", mock.Anything, tranche.TrancheID, domain.ExcuseRejected, "", suite.actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.DecideExcuse(context.Background(), tranche.TrancheID, dto.DecideExcuseRequest{Approved: boolPtr(false)}, suite.actorUserID)

	suite.NoError(err)
	suite.Equal(domain.ExcuseRejected, updated.ExcuseStatus)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDecideExcuse_RejectsMissingDecision() {
	_, err := suite.service.DecideExcuse(context.Background(), uuid.NewString(), dto.DecideExcuseRequest{}, suite.actorUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestDecideExcuse_RejectsTrancheWithoutExcuse() {
	tranche := suite.trancheWithPendingExcuse()
	tranche.HasExcuse = false
	tranche.ExcuseStatus = ""

	suite.mockEnrollmentRepo.On("FindTrancheByID", mock.Anything, tranche.TrancheID).
		Return(tranche, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, suite.enrollment.EnrollmentID).
		Return(&suite.enrollment, nil).Once()
	suite.expectAuthorized()

	_, err := suite.service.DecideExcuse(context.Background(), tranche.TrancheID, dto.DecideExcuseRequest{Approved: boolPtr(true)}, suite.actorUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "UpdateTrancheExcuse")
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

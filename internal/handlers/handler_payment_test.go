package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
	"github.com/codinglive/codinglive_app/internal/middleware"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, enrollmentID string, req dto.RecordPaymentRequest, actorUserID string) (*domain.Tranche, decimal.Decimal, domain.EnrollmentStatus, error) {
	args := m.Called(ctx, enrollmentID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, "", args.Error(3)
	}
	return args.Get(0).(*domain.Tranche), args.Get(1).(decimal.Decimal), args.Get(2).(domain.EnrollmentStatus), args.Error(3)
}

func (m *MockPaymentService) DecideExcuse(ctx context.Context, trancheID string, req dto.DecideExcuseRequest, actorUserID string) (*domain.Tranche, error) {
	args := m.Called(ctx, trancheID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tranche), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock EnrollmentService ---
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) CreateEnrollment(ctx context.Context, programID string, req dto.CreateEnrollmentRequest, creatorUserID string) (*domain.Enrollment, []domain.Tranche, error) {
	args := m.Called(ctx, programID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Enrollment), args.Get(1).([]domain.Tranche), args.Error(2)
}

func (m *MockEnrollmentService) GetEnrollmentByID(ctx context.Context, enrollmentID string, requestingUserID string) (*domain.Enrollment, []domain.Tranche, error) {
	args := m.Called(ctx, enrollmentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Enrollment), args.Get(1).([]domain.Tranche), args.Error(2)
}

func (m *MockEnrollmentService) ListEnrollmentsByProgram(ctx context.Context, programID string, params dto.ListEnrollmentsParams, requestingUserID string) ([]domain.Enrollment, *string, error) {
	args := m.Called(ctx, programID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Enrollment), nextToken, args.Error(2)
}

func (m *MockEnrollmentService) ListEnrollmentsByStudent(ctx context.Context, studentID string, requestingUserID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, studentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.EnrollmentSvcFacade = (*MockEnrollmentService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetProgramPaymentSummary(ctx context.Context, programID string, requestingUserID string) (*dto.ProgramPaymentSummaryResponse, error) {
	args := m.Called(ctx, programID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProgramPaymentSummaryResponse), args.Error(1)
}

func (m *MockReportingService) RenderTrancheReceipt(ctx context.Context, trancheID string, requestingUserID string) ([]byte, error) {
	args := m.Called(ctx, trancheID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockPaymentService    *MockPaymentService
	mockEnrollmentService *MockEnrollmentService
	mockReportingService  *MockReportingService
	jwtSecret             string
}

// generateTestToken creates a signed JWT for testing.
func (suite *PaymentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cl-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPaymentService = new(MockPaymentService)
	suite.mockEnrollmentService = new(MockEnrollmentService)
	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1")
	registerEnrollmentRoutes(v1, suite.mockEnrollmentService, suite.mockPaymentService)
	registerTrancheRoutes(v1, suite.mockPaymentService, suite.mockReportingService)
}

func (suite *PaymentHandlerTestSuite) postJSON(url string, body any, userID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PaymentHandlerTestSuite) TestRecordPayment_Success() {
	enrollmentID := uuid.NewString()
	actorUserID := uuid.NewString()
	amount := decimal.NewFromInt(90000)
	now := time.Now().UTC().Truncate(time.Second)

	paidTranche := &domain.Tranche{
		TrancheID:      uuid.NewString(),
		EnrollmentID:   enrollmentID,
		ExpectedAmount: amount,
		ActualAmount:   &amount,
		PaidAt:         &now,
		PaymentMethod:  "CASH",
	}

	suite.mockPaymentService.On("RecordPayment",
		mock.Anything,
		enrollmentID,
		mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
			return req.Amount.Equal(amount) && req.TrancheID == nil && req.PaymentMethod == "CASH"
		}),
		actorUserID,
	).Return(paidTranche, amount, domain.EnrollmentPartial, nil).Once()

	body := dto.RecordPaymentRequest{Amount: amount, PaymentMethod: "CASH"}
	w := suite.postJSON(fmt.Sprintf("/api/v1/enrollments/%s/payments", enrollmentID), body, actorUserID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.RecordPaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(paidTranche.TrancheID, resp.Tranche.TrancheID)
	suite.True(resp.TotalPaid.Equal(amount))
	suite.Equal(string(domain.EnrollmentPartial), resp.Status)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestRecordPayment_EnrollmentNotFound() {
	enrollmentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockPaymentService.On("RecordPayment", mock.Anything, enrollmentID, mock.Anything, actorUserID).
		Return(nil, decimal.Zero, domain.EnrollmentStatus(""), apperrors.ErrNotFound).Once()

	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/enrollments/%s/payments", enrollmentID), body, actorUserID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestRecordPayment_Forbidden() {
	enrollmentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockPaymentService.On("RecordPayment", mock.Anything, enrollmentID, mock.Anything, actorUserID).
		Return(nil, decimal.Zero, domain.EnrollmentStatus(""), apperrors.ErrForbidden).Once()

	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/enrollments/%s/payments", enrollmentID), body, actorUserID)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestRecordPayment_MissingAmountIsBadRequest() {
	enrollmentID := uuid.NewString()
	actorUserID := uuid.NewString()

	w := suite.postJSON(fmt.Sprintf("/api/v1/enrollments/%s/payments", enrollmentID), gin.H{"notes": "no amount"}, actorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *PaymentHandlerTestSuite) TestRecordPayment_RequiresToken() {
	body, _ := json.Marshal(dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100)})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/enrollments/"+uuid.NewString()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *PaymentHandlerTestSuite) TestDecideExcuse_Approve() {
	trancheID := uuid.NewString()
	actorUserID := uuid.NewString()

	decided := &domain.Tranche{
		TrancheID:    trancheID,
		EnrollmentID: uuid.NewString(),
		HasExcuse:    true,
		ExcuseReason: "Family emergency",
		ExcuseStatus: domain.ExcuseApproved,
	}

	suite.mockPaymentService.On("DecideExcuse",
		mock.Anything,
		trancheID,
		mock.MatchedBy(func(req dto.DecideExcuseRequest) bool {
			return req.Approved != nil && *req.Approved
		}),
		actorUserID,
	).Return(decided, nil).Once()

	approved := true
	body := dto.DecideExcuseRequest{Approved: &approved, Notes: "Verified with the student"}
	w := suite.postJSON(fmt.Sprintf("/api/v1/tranches/%s/excuse-decision", trancheID), body, actorUserID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TrancheResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.ExcuseApproved), resp.ExcuseStatus)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestDecideExcuse_MissingDecisionIsBadRequest() {
	trancheID := uuid.NewString()
	actorUserID := uuid.NewString()

	w := suite.postJSON(fmt.Sprintf("/api/v1/tranches/%s/excuse-decision", trancheID), gin.H{"notes": "no verdict"}, actorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "DecideExcuse")
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
)

// --- Mock EnrollmentRepository ---

type MockEnrollmentRepository struct {
	mock.Mock
}

var _ portsrepo.EnrollmentRepositoryFacade = (*MockEnrollmentRepository)(nil)

func (m *MockEnrollmentRepository) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListEnrollmentsByProgram(ctx context.Context, programID string, limit int, nextToken *string) ([]domain.Enrollment, *string, error) {
	args := m.Called(ctx, programID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Enrollment), returnedNextToken, args.Error(2)
}

func (m *MockEnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) SaveEnrollmentWithTranches(ctx context.Context, enrollment domain.Enrollment, tranches []domain.Tranche) error {
	args := m.Called(ctx, enrollment, tranches)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) ApplyPayment(ctx context.Context, enrollmentID string, payment portsrepo.PaymentApplication) (*portsrepo.PaymentResult, error) {
	args := m.Called(ctx, enrollmentID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.PaymentResult), args.Error(1)
}

func (m *MockEnrollmentRepository) FindTrancheByID(ctx context.Context, trancheID string) (*domain.Tranche, error) {
	args := m.Called(ctx, trancheID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tranche), args.Error(1)
}

func (m *MockEnrollmentRepository) ListTranchesByEnrollment(ctx context.Context, enrollmentID string) ([]domain.Tranche, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tranche), args.Error(1)
}

func (m *MockEnrollmentRepository) UpdateTrancheExcuse(ctx context.Context, trancheID string, status domain.ExcuseStatus, notes string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, trancheID, status, notes, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ProgramRepository ---

type MockProgramRepository struct {
	mock.Mock
}

var _ portsrepo.ProgramRepositoryFacade = (*MockProgramRepository)(nil)

func (m *MockProgramRepository) FindProgramByID(ctx context.Context, programID string) (*domain.Program, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Program), args.Error(1)
}

func (m *MockProgramRepository) ListPrograms(ctx context.Context, limit int, offset int) ([]domain.Program, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *MockProgramRepository) ListProgramsByTeacher(ctx context.Context, userID string) ([]domain.Program, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Program), args.Error(1)
}

func (m *MockProgramRepository) SaveProgram(ctx context.Context, program domain.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) UpdateProgram(ctx context.Context, program domain.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) AddTeacherToProgram(ctx context.Context, staffing domain.ProgramTeacher) error {
	args := m.Called(ctx, staffing)
	return args.Error(0)
}

func (m *MockProgramRepository) FindProgramTeacherRole(ctx context.Context, userID, programID string) (*domain.ProgramTeacher, error) {
	args := m.Called(ctx, userID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgramTeacher), args.Error(1)
}

// --- Mock StudentRepository ---

type MockStudentRepository struct {
	mock.Mock
}

var _ portsrepo.StudentRepositoryFacade = (*MockStudentRepository)(nil)

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindStudents(ctx context.Context, limit int, offset int) ([]domain.Student, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) MarkStudentDeleted(ctx context.Context, studentID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, studentID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetProgramPaymentAggregate(ctx context.Context, programID string, asOf time.Time) (*portsrepo.ProgramPaymentAggregate, error) {
	args := m.Called(ctx, programID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.ProgramPaymentAggregate), args.Error(1)
}

// --- Mock ProgramAuthorizer ---

type MockProgramAuthorizer struct {
	mock.Mock
}

var _ portssvc.ProgramAuthorizerSvc = (*MockProgramAuthorizer)(nil)

func (m *MockProgramAuthorizer) AuthorizeTeacherAction(ctx context.Context, userID, programID string, requiredRole domain.ProgramTeacherRole) error {
	args := m.Called(ctx, userID, programID, requiredRole)
	return args.Error(0)
}

// --- Shared helpers ---

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

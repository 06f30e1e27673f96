package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// PaymentApplication carries one payment to be applied to an enrollment.
// When TargetTrancheID is set the payment is recorded against that planned
// tranche; otherwise AdHocTranche holds a fully formed tranche to insert.
type PaymentApplication struct {
	Amount          decimal.Decimal
	TargetTrancheID *string
	AdHocTranche    *domain.Tranche
	PaidAt          time.Time
	PaymentMethod   string
	Reference       string
	ReceivedBy      string
	Notes           string
	HasExcuse       bool
	ExcuseReason    string
	ActorUserID     string
}

// PaymentResult is the outcome of an applied payment.
type PaymentResult struct {
	Tranche   domain.Tranche
	TotalPaid decimal.Decimal
	Status    domain.EnrollmentStatus
}

// EnrollmentReader defines read operations for enrollment data
type EnrollmentReader interface {
	// FindEnrollmentByID retrieves a specific enrollment.
	FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)

	// ListEnrollmentsByProgram retrieves a token-paginated list of enrollments.
	ListEnrollmentsByProgram(ctx context.Context, programID string, limit int, nextToken *string) ([]domain.Enrollment, *string, error)

	// ListEnrollmentsByStudent retrieves all enrollments of a student.
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error)
}

// EnrollmentWriter defines write operations for enrollment data
type EnrollmentWriter interface {
	// SaveEnrollmentWithTranches persists a new enrollment and its planned
	// tranches within a single database transaction.
	SaveEnrollmentWithTranches(ctx context.Context, enrollment domain.Enrollment, tranches []domain.Tranche) error

	// ApplyPayment applies a payment to an enrollment atomically: it locks the
	// enrollment row, mutates or inserts the tranche, recomputes the paid sum
	// and derived status, and persists them, all in one transaction.
	// Returns apperrors.ErrNotFound when the enrollment or target tranche does
	// not exist or the tranche belongs to a different enrollment.
	ApplyPayment(ctx context.Context, enrollmentID string, payment PaymentApplication) (*PaymentResult, error)
}

// TrancheReader defines read operations for tranche data
type TrancheReader interface {
	// FindTrancheByID retrieves a specific tranche.
	FindTrancheByID(ctx context.Context, trancheID string) (*domain.Tranche, error)

	// ListTranchesByEnrollment retrieves all tranches of an enrollment ordered
	// by due date.
	ListTranchesByEnrollment(ctx context.Context, enrollmentID string) ([]domain.Tranche, error)
}

// TrancheExcuseManager defines the excuse decision write operation
type TrancheExcuseManager interface {
	// UpdateTrancheExcuse records a teacher's decision on a pending excuse.
	// It touches only the excuse fields and notes, never payment facts.
	UpdateTrancheExcuse(ctx context.Context, trancheID string, status domain.ExcuseStatus, notes string, updatedBy string, updatedAt time.Time) error
}

// EnrollmentRepositoryFacade combines all enrollment and tranche repository interfaces
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
	TrancheReader
	TrancheExcuseManager
}

// EnrollmentRepositoryWithTx extends EnrollmentRepositoryFacade with transaction capabilities
type EnrollmentRepositoryWithTx interface {
	EnrollmentRepositoryFacade
	TransactionManager
}

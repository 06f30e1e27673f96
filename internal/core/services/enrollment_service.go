package services

import (
	"context"
	"errors"
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

// enrollmentService implements the EnrollmentSvcFacade interface
type enrollmentService struct {
	BaseService
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	programRepo    portsrepo.ProgramReader
	studentRepo    portsrepo.StudentReader
}

// NewEnrollmentService creates a new enrollment service with the provided dependencies
func NewEnrollmentService(
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	programRepo portsrepo.ProgramReader,
	studentRepo portsrepo.StudentReader,
	programAuthorizer portssvc.ProgramAuthorizerSvc,
) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		BaseService:    BaseService{ProgramAuthorizer: programAuthorizer},
		enrollmentRepo: enrollmentRepo,
		programRepo:    programRepo,
		studentRepo:    studentRepo,
	}
}

// Ensure enrollmentService implements the EnrollmentSvcFacade interface
var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

// CreateEnrollment enrolls a student in a program. The program total is
// snapshotted onto the enrollment, and the planned tranche schedule is
// generated from the program's rules in the same transaction.
func (s *enrollmentService) CreateEnrollment(ctx context.Context, programID string, req dto.CreateEnrollmentRequest, creatorUserID string) (*domain.Enrollment, []domain.Tranche, error) {
	if err := s.AuthorizeTeacher(ctx, creatorUserID, programID, domain.ProgramRoleAssistant); err != nil {
		return nil, nil, err
	}

	program, err := s.programRepo.FindProgramByID(ctx, programID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.studentRepo.FindStudentByID(ctx, req.StudentID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	enrollment := domain.Enrollment{
		EnrollmentID: uuid.NewString(),
		StudentID:    req.StudentID,
		ProgramID:    programID,
		TotalAmount:  program.TotalAmount,
		PaidAmount:   decimal.Zero,
		Status:       domain.EnrollmentPending,
		EnrolledAt:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tranches := generatePlannedTranches(program, enrollment, creatorUserID, now)

	if err := s.enrollmentRepo.SaveEnrollmentWithTranches(ctx, enrollment, tranches); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save enrollment", slog.String("program_id", programID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Enrollment created",
		slog.String("enrollment_id", enrollment.EnrollmentID),
		slog.String("program_id", programID),
		slog.Int("planned_tranches", len(tranches)))
	return &enrollment, tranches, nil
}

// generatePlannedTranches turns a program's schedule rules into concrete
// tranches for one enrollment. With no rules the schedule stays empty and the
// first payment creates an ad-hoc tranche instead.
func generatePlannedTranches(program *domain.Program, enrollment domain.Enrollment, creatorUserID string, now time.Time) []domain.Tranche {
	tranches := make([]domain.Tranche, 0, len(program.TrancheRules))
	for _, rule := range program.TrancheRules {
		expected := program.TotalAmount.Mul(rule.Percent).Div(oneHundred)
		tranches = append(tranches, domain.Tranche{
			TrancheID:       uuid.NewString(),
			EnrollmentID:    enrollment.EnrollmentID,
			ExpectedAmount:  expected,
			ExpectedPercent: rule.Percent,
			DueDate:         program.StartDate.AddDate(0, 0, rule.DueWeek*7),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}
	return tranches
}

// GetEnrollmentByID retrieves an enrollment together with its tranches
func (s *enrollmentService) GetEnrollmentByID(ctx context.Context, enrollmentID string, requestingUserID string) (*domain.Enrollment, []domain.Tranche, error) {
	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find enrollment", slog.String("enrollment_id", enrollmentID))
		}
		return nil, nil, err
	}

	if err := s.AuthorizeTeacher(ctx, requestingUserID, enrollment.ProgramID, domain.ProgramRoleAssistant); err != nil {
		return nil, nil, err
	}

	tranches, err := s.enrollmentRepo.ListTranchesByEnrollment(ctx, enrollmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tranches", slog.String("enrollment_id", enrollmentID))
		return nil, nil, err
	}

	return enrollment, tranches, nil
}

// ListEnrollmentsByStudent retrieves all enrollments of one student. Student
// records are staff-wide, so unlike the program-scoped listings this needs no
// staffing check beyond authentication.
func (s *enrollmentService) ListEnrollmentsByStudent(ctx context.Context, studentID string, requestingUserID string) ([]domain.Enrollment, error) {
	if _, err := s.studentRepo.FindStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollments for student",
			slog.String("student_id", studentID),
			slog.String("requested_by", requestingUserID))
		return nil, err
	}
	if enrollments == nil {
		enrollments = []domain.Enrollment{}
	}
	return enrollments, nil
}

// ListEnrollmentsByProgram retrieves a token-paginated list of enrollments
func (s *enrollmentService) ListEnrollmentsByProgram(ctx context.Context, programID string, params dto.ListEnrollmentsParams, requestingUserID string) ([]domain.Enrollment, *string, error) {
	if err := s.AuthorizeTeacher(ctx, requestingUserID, programID, domain.ProgramRoleAssistant); err != nil {
		return nil, nil, err
	}

	enrollments, nextToken, err := s.enrollmentRepo.ListEnrollmentsByProgram(ctx, programID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollments", slog.String("program_id", programID))
		return nil, nil, err
	}
	if enrollments == nil {
		enrollments = []domain.Enrollment{}
	}
	return enrollments, nextToken, nil
}

package services

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// EnrollmentReaderSvc defines read operations for enrollment data
type EnrollmentReaderSvc interface {
	// GetEnrollmentByID retrieves an enrollment together with its tranches.
	GetEnrollmentByID(ctx context.Context, enrollmentID string, requestingUserID string) (*domain.Enrollment, []domain.Tranche, error)

	// ListEnrollmentsByProgram retrieves a token-paginated list of enrollments.
	ListEnrollmentsByProgram(ctx context.Context, programID string, params dto.ListEnrollmentsParams, requestingUserID string) ([]domain.Enrollment, *string, error)

	// ListEnrollmentsByStudent retrieves all enrollments of one student.
	ListEnrollmentsByStudent(ctx context.Context, studentID string, requestingUserID string) ([]domain.Enrollment, error)
}

// EnrollmentWriterSvc defines write operations for enrollment data
type EnrollmentWriterSvc interface {
	// CreateEnrollment enrolls a student in a program, snapshotting the program
	// total and generating the planned tranche schedule.
	CreateEnrollment(ctx context.Context, programID string, req dto.CreateEnrollmentRequest, creatorUserID string) (*domain.Enrollment, []domain.Tranche, error)
}

// EnrollmentSvcFacade combines all enrollment-related service interfaces
type EnrollmentSvcFacade interface {
	EnrollmentReaderSvc
	EnrollmentWriterSvc
}

package services

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// StudentReaderSvc defines read operations for student data
type StudentReaderSvc interface {
	// GetStudentByID retrieves a student by ID.
	GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// ListStudents retrieves a paginated list of students.
	ListStudents(ctx context.Context, limit, offset int) ([]domain.Student, error)
}

// StudentWriterSvc defines write operations for student data
type StudentWriterSvc interface {
	// CreateStudent registers a new student record.
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error)

	// UpdateStudent updates an existing student record.
	UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.Student, error)

	// DeleteStudent marks a student as deleted (soft delete).
	DeleteStudent(ctx context.Context, studentID string, requestingUserID string) error
}

// StudentSvcFacade combines all student-related service interfaces
type StudentSvcFacade interface {
	StudentReaderSvc
	StudentWriterSvc
}

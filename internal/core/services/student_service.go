package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// studentService implements the StudentSvcFacade interface
type studentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewStudentService creates a new student service with the provided dependencies
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade) portssvc.StudentSvcFacade {
	return &studentService{studentRepo: studentRepo}
}

// Ensure studentService implements the StudentSvcFacade interface
var _ portssvc.StudentSvcFacade = (*studentService)(nil)

// CreateStudent registers a new student record
func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error) {
	now := time.Now()
	student := domain.Student{
		StudentID: uuid.NewString(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save new student")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Student created", slog.String("student_id", student.StudentID))
	return &student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentService) GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find student by ID", slog.String("student_id", studentID))
		}
		return nil, err
	}
	return student, nil
}

// ListStudents retrieves a paginated list of students
func (s *studentService) ListStudents(ctx context.Context, limit, offset int) ([]domain.Student, error) {
	students, err := s.studentRepo.FindStudents(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students")
		return nil, err
	}
	if students == nil {
		return []domain.Student{}, nil
	}
	return students, nil
}

// UpdateStudent updates an existing student record
func (s *studentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	student.LastUpdatedAt = time.Now()
	student.LastUpdatedBy = requestingUserID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		s.LogError(ctx, err, "Failed to update student", slog.String("student_id", studentID))
		return nil, err
	}

	return student, nil
}

// DeleteStudent marks a student as deleted (soft delete)
func (s *studentService) DeleteStudent(ctx context.Context, studentID string, requestingUserID string) error {
	if err := s.studentRepo.MarkStudentDeleted(ctx, studentID, time.Now(), requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark student deleted", slog.String("student_id", studentID))
		}
		return err
	}

	s.LogInfo(ctx, "Student deleted", slog.String("student_id", studentID))
	return nil
}

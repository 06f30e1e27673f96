package repositories

import (
	"context"
	"time"

	"github.com/codinglive/codinglive_app/internal/core/domain"
)

// StudentReader defines read operations for student data
type StudentReader interface {
	// FindStudentByID retrieves a specific student by their ID.
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// FindStudents retrieves a paginated list of students.
	FindStudents(ctx context.Context, limit int, offset int) ([]domain.Student, error)
}

// StudentWriter defines write operations for student data
type StudentWriter interface {
	// SaveStudent persists a new student.
	SaveStudent(ctx context.Context, student domain.Student) error

	// UpdateStudent updates an existing student's details.
	UpdateStudent(ctx context.Context, student domain.Student) error
}

// StudentLifecycleManager defines operations for managing student lifecycle
type StudentLifecycleManager interface {
	// MarkStudentDeleted marks a student as deleted (soft delete).
	MarkStudentDeleted(ctx context.Context, studentID string, deletedAt time.Time, deletedBy string) error
}

// StudentRepositoryFacade combines all student-related repository interfaces
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
	StudentLifecycleManager
}

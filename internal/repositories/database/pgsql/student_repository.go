package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	"github.com/codinglive/codinglive_app/internal/models"
	"github.com/codinglive/codinglive_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStudentRepository struct {
	db *pgxpool.Pool
}

func newPgxStudentRepository(db *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{db: db}
}

// Ensure PgxStudentRepository implements portsrepo.StudentRepositoryFacade
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	modelStudent := mapping.ToModelStudent(student)
	query := `
        INSERT INTO students (student_id, full_name, email, phone, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelStudent.StudentID,
		modelStudent.FullName,
		modelStudent.Email,
		modelStudent.Phone,
		modelStudent.CreatedAt,
		modelStudent.CreatedBy,
		modelStudent.LastUpdatedAt,
		modelStudent.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student with email %s already exists: %w", student.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `
		SELECT student_id, full_name, email, phone, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM students
		WHERE student_id = $1 AND deleted_at IS NULL;
	`
	var modelStudent models.Student
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&modelStudent.StudentID,
		&modelStudent.FullName,
		&modelStudent.Email,
		&modelStudent.Phone,
		&modelStudent.CreatedAt,
		&modelStudent.CreatedBy,
		&modelStudent.LastUpdatedAt,
		&modelStudent.LastUpdatedBy,
		&modelStudent.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}

	domainStudent := mapping.ToDomainStudent(modelStudent)
	return &domainStudent, nil
}

func (r *PgxStudentRepository) FindStudents(ctx context.Context, limit int, offset int) ([]domain.Student, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT student_id, full_name, email, phone, created_at, created_by, last_updated_at, last_updated_by, deleted_at
        FROM students
        WHERE deleted_at IS NULL
        ORDER BY full_name
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	modelStudents := []models.Student{}
	for rows.Next() {
		var modelStudent models.Student
		err := rows.Scan(
			&modelStudent.StudentID,
			&modelStudent.FullName,
			&modelStudent.Email,
			&modelStudent.Phone,
			&modelStudent.CreatedAt,
			&modelStudent.CreatedBy,
			&modelStudent.LastUpdatedAt,
			&modelStudent.LastUpdatedBy,
			&modelStudent.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		modelStudents = append(modelStudents, modelStudent)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", rows.Err())
	}

	return mapping.ToDomainStudentSlice(modelStudents), nil
}

func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	modelStudent := mapping.ToModelStudent(student)
	query := `
        UPDATE students
        SET full_name = $1, email = $2, phone = $3, last_updated_at = $4, last_updated_by = $5
        WHERE student_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelStudent.FullName,
		modelStudent.Email,
		modelStudent.Phone,
		modelStudent.LastUpdatedAt,
		modelStudent.LastUpdatedBy,
		modelStudent.StudentID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update student query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("student not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStudentRepository) MarkStudentDeleted(ctx context.Context, studentID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE students
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE student_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, studentID)
	if err != nil {
		return fmt.Errorf("failed to mark student as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("student not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

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
	"github.com/codinglive/codinglive_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const trancheColumns = `tranche_id, enrollment_id, expected_amount, expected_percent, due_date,
	       actual_amount, paid_at, payment_method, reference, received_by, notes,
	       has_excuse, excuse_reason, excuse_status,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxEnrollmentRepository struct {
	BaseRepository
}

func newPgxEnrollmentRepository(pool *pgxpool.Pool) portsrepo.EnrollmentRepositoryWithTx {
	return &PgxEnrollmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEnrollmentRepository implements portsrepo.EnrollmentRepositoryWithTx
var _ portsrepo.EnrollmentRepositoryWithTx = (*PgxEnrollmentRepository)(nil)

// SaveEnrollmentWithTranches persists a new enrollment and its planned tranche
// schedule within a single DB transaction.
func (r *PgxEnrollmentRepository) SaveEnrollmentWithTranches(ctx context.Context, enrollment domain.Enrollment, tranches []domain.Tranche) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelEnrollment := mapping.ToModelEnrollment(enrollment)
	enrollmentQuery := `
		INSERT INTO enrollments (enrollment_id, student_id, program_id, total_amount, paid_amount, status, enrolled_at,
		                         created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, enrollmentQuery,
		modelEnrollment.EnrollmentID,
		modelEnrollment.StudentID,
		modelEnrollment.ProgramID,
		modelEnrollment.TotalAmount,
		modelEnrollment.PaidAmount,
		modelEnrollment.Status,
		modelEnrollment.EnrolledAt,
		modelEnrollment.CreatedAt,
		modelEnrollment.CreatedBy,
		modelEnrollment.LastUpdatedAt,
		modelEnrollment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student %s already enrolled in program %s: %w", enrollment.StudentID, enrollment.ProgramID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert enrollment %s: %w", modelEnrollment.EnrollmentID, err)
	}

	if len(tranches) > 0 {
		batch := &pgx.Batch{}
		for _, tranche := range tranches {
			modelTranche := mapping.ToModelTranche(tranche)
			batch.Queue(insertTrancheQuery, insertTrancheArgs(modelTranche)...)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert planned tranches for enrollment %s: %w", modelEnrollment.EnrollmentID, err)
		}
	}

	return r.Commit(ctx, tx)
}

const insertTrancheQuery = `
	INSERT INTO tranches (tranche_id, enrollment_id, expected_amount, expected_percent, due_date,
	                      actual_amount, paid_at, payment_method, reference, received_by, notes,
	                      has_excuse, excuse_reason, excuse_status,
	                      created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

func insertTrancheArgs(m models.Tranche) []any {
	var excuseStatus *string
	if m.ExcuseStatus != "" {
		s := string(m.ExcuseStatus)
		excuseStatus = &s
	}
	return []any{
		m.TrancheID,
		m.EnrollmentID,
		m.ExpectedAmount,
		m.ExpectedPercent,
		m.DueDate,
		m.ActualAmount,
		m.PaidAt,
		m.PaymentMethod,
		m.Reference,
		m.ReceivedBy,
		m.Notes,
		m.HasExcuse,
		m.ExcuseReason,
		excuseStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// ApplyPayment applies one payment to an enrollment atomically. It locks the
// enrollment row so concurrent payments serialize, mutates or inserts the
// tranche, recomputes the paid sum from the ledger, derives the new status and
// persists it, all inside one DB transaction.
func (r *PgxEnrollmentRepository) ApplyPayment(ctx context.Context, enrollmentID string, payment portsrepo.PaymentApplication) (*portsrepo.PaymentResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the enrollment row for the duration of the transaction.
	var modelEnrollment models.Enrollment
	lockQuery := `
		SELECT enrollment_id, student_id, program_id, total_amount, paid_amount, status, enrolled_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE enrollment_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, enrollmentID).Scan(
		&modelEnrollment.EnrollmentID,
		&modelEnrollment.StudentID,
		&modelEnrollment.ProgramID,
		&modelEnrollment.TotalAmount,
		&modelEnrollment.PaidAmount,
		&modelEnrollment.Status,
		&modelEnrollment.EnrolledAt,
		&modelEnrollment.CreatedAt,
		&modelEnrollment.CreatedBy,
		&modelEnrollment.LastUpdatedAt,
		&modelEnrollment.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock enrollment %s: %w", enrollmentID, err)
	}

	// 2. Mutate the target tranche, or insert the ad-hoc one.
	var mutated domain.Tranche
	if payment.TargetTrancheID != nil {
		mutated, err = r.payPlannedTrancheInTx(ctx, tx, enrollmentID, *payment.TargetTrancheID, payment)
		if err != nil {
			return nil, err
		}
	} else {
		modelTranche := mapping.ToModelTranche(*payment.AdHocTranche)
		if _, err := tx.Exec(ctx, insertTrancheQuery, insertTrancheArgs(modelTranche)...); err != nil {
			return nil, fmt.Errorf("failed to insert ad-hoc tranche for enrollment %s: %w", enrollmentID, err)
		}
		mutated = *payment.AdHocTranche
	}

	// 3. Recompute the cumulative paid amount from the ledger itself.
	var totalPaid decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(actual_amount), 0)
		FROM tranches
		WHERE enrollment_id = $1 AND paid_at IS NOT NULL;
	`
	if err := tx.QueryRow(ctx, sumQuery, enrollmentID).Scan(&totalPaid); err != nil {
		return nil, fmt.Errorf("failed to sum paid tranches for enrollment %s: %w", enrollmentID, err)
	}

	// 4. Derive the new status and persist it on the enrollment.
	status := domain.DeriveEnrollmentStatus(modelEnrollment.TotalAmount, totalPaid, &mutated)
	updateQuery := `
		UPDATE enrollments
		SET paid_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE enrollment_id = $5;
	`
	_, err = tx.Exec(ctx, updateQuery, totalPaid, string(status), payment.PaidAt, payment.ActorUserID, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update enrollment %s after payment: %w", enrollmentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.PaymentResult{
		Tranche:   mutated,
		TotalPaid: totalPaid,
		Status:    status,
	}, nil
}

// payPlannedTrancheInTx records payment facts on an existing tranche. The
// tranche must belong to the locked enrollment; a mismatch reports NotFound
// so callers cannot probe other enrollments' ledgers.
func (r *PgxEnrollmentRepository) payPlannedTrancheInTx(ctx context.Context, tx pgx.Tx, enrollmentID, trancheID string, payment portsrepo.PaymentApplication) (domain.Tranche, error) {
	query := `SELECT ` + trancheColumns + `
		FROM tranches
		WHERE tranche_id = $1
		FOR UPDATE;
	`
	modelTranche, err := scanTranche(tx.QueryRow(ctx, query, trancheID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tranche{}, apperrors.ErrNotFound
		}
		return domain.Tranche{}, fmt.Errorf("failed to lock tranche %s: %w", trancheID, err)
	}
	if modelTranche.EnrollmentID != enrollmentID {
		return domain.Tranche{}, apperrors.ErrNotFound
	}

	tranche := mapping.ToDomainTranche(modelTranche)
	amount := payment.Amount
	paidAt := payment.PaidAt
	tranche.ActualAmount = &amount
	tranche.PaidAt = &paidAt
	tranche.PaymentMethod = payment.PaymentMethod
	tranche.Reference = payment.Reference
	tranche.ReceivedBy = payment.ReceivedBy
	tranche.Notes = payment.Notes
	tranche.HasExcuse = payment.HasExcuse
	if payment.HasExcuse {
		tranche.ExcuseReason = payment.ExcuseReason
		tranche.ExcuseStatus = domain.ExcusePending
	} else {
		tranche.ExcuseReason = ""
		tranche.ExcuseStatus = ""
	}
	tranche.LastUpdatedAt = paidAt
	tranche.LastUpdatedBy = payment.ActorUserID

	var excuseStatus *string
	if tranche.ExcuseStatus != "" {
		s := string(tranche.ExcuseStatus)
		excuseStatus = &s
	}
	updateQuery := `
		UPDATE tranches
		SET actual_amount = $1, paid_at = $2, payment_method = $3, reference = $4, received_by = $5, notes = $6,
		    has_excuse = $7, excuse_reason = $8, excuse_status = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE tranche_id = $12;
	`
	_, err = tx.Exec(ctx, updateQuery,
		tranche.ActualAmount,
		tranche.PaidAt,
		tranche.PaymentMethod,
		tranche.Reference,
		tranche.ReceivedBy,
		tranche.Notes,
		tranche.HasExcuse,
		tranche.ExcuseReason,
		excuseStatus,
		tranche.LastUpdatedAt,
		tranche.LastUpdatedBy,
		trancheID,
	)
	if err != nil {
		return domain.Tranche{}, fmt.Errorf("failed to update tranche %s with payment: %w", trancheID, err)
	}

	return tranche, nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	query := `
		SELECT enrollment_id, student_id, program_id, total_amount, paid_amount, status, enrolled_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE enrollment_id = $1;
	`
	var m models.Enrollment
	err := r.Pool.QueryRow(ctx, query, enrollmentID).Scan(
		&m.EnrollmentID,
		&m.StudentID,
		&m.ProgramID,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Status,
		&m.EnrolledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment by ID %s: %w", enrollmentID, err)
	}

	enrollment := mapping.ToDomainEnrollment(m)
	return &enrollment, nil
}

// ListEnrollmentsByProgram lists a program's enrollments newest first using
// keyset pagination on (enrolled_at, enrollment_id).
func (r *PgxEnrollmentRepository) ListEnrollmentsByProgram(ctx context.Context, programID string, limit int, nextToken *string) ([]domain.Enrollment, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{programID}
	query := `
		SELECT enrollment_id, student_id, program_id, total_amount, paid_amount, status, enrolled_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE program_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		enrolledAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (enrolled_at, enrollment_id) < ($2, $3)`
		args = append(args, enrolledAt, lastID)
	}
	query += fmt.Sprintf(`
		ORDER BY enrolled_at DESC, enrollment_id DESC
		LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // fetch one extra to detect a next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query enrollments for program %s: %w", programID, err)
	}
	defer rows.Close()

	modelEnrollments, err := scanEnrollments(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(modelEnrollments) > limit {
		modelEnrollments = modelEnrollments[:limit]
		last := modelEnrollments[limit-1]
		token := pagination.EncodeToken(last.EnrolledAt, last.EnrollmentID)
		newNextToken = &token
	}

	return mapping.ToDomainEnrollmentSlice(modelEnrollments), newNextToken, nil
}

func (r *PgxEnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	query := `
		SELECT enrollment_id, student_id, program_id, total_amount, paid_amount, status, enrolled_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM enrollments
		WHERE student_id = $1
		ORDER BY enrolled_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments for student %s: %w", studentID, err)
	}
	defer rows.Close()

	modelEnrollments, err := scanEnrollments(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainEnrollmentSlice(modelEnrollments), nil
}

func scanEnrollments(rows pgx.Rows) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	for rows.Next() {
		var m models.Enrollment
		err := rows.Scan(
			&m.EnrollmentID,
			&m.StudentID,
			&m.ProgramID,
			&m.TotalAmount,
			&m.PaidAmount,
			&m.Status,
			&m.EnrolledAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", rows.Err())
	}
	return enrollments, nil
}

func (r *PgxEnrollmentRepository) FindTrancheByID(ctx context.Context, trancheID string) (*domain.Tranche, error) {
	query := `SELECT ` + trancheColumns + `
		FROM tranches
		WHERE tranche_id = $1;
	`
	modelTranche, err := scanTranche(r.Pool.QueryRow(ctx, query, trancheID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tranche by ID %s: %w", trancheID, err)
	}

	tranche := mapping.ToDomainTranche(modelTranche)
	return &tranche, nil
}

func (r *PgxEnrollmentRepository) ListTranchesByEnrollment(ctx context.Context, enrollmentID string) ([]domain.Tranche, error) {
	query := `SELECT ` + trancheColumns + `
		FROM tranches
		WHERE enrollment_id = $1
		ORDER BY due_date, tranche_id;
	`
	rows, err := r.Pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tranches for enrollment %s: %w", enrollmentID, err)
	}
	defer rows.Close()

	modelTranches := []models.Tranche{}
	for rows.Next() {
		m, err := scanTranche(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tranche row: %w", err)
		}
		modelTranches = append(modelTranches, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating tranche rows: %w", rows.Err())
	}

	return mapping.ToDomainTrancheSlice(modelTranches), nil
}

// UpdateTrancheExcuse records the decision on a pending excuse. Payment facts
// are never touched here.
func (r *PgxEnrollmentRepository) UpdateTrancheExcuse(ctx context.Context, trancheID string, status domain.ExcuseStatus, notes string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE tranches
		SET excuse_status = $1,
		    notes = CASE WHEN $2 <> '' THEN $2 ELSE notes END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE tranche_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), notes, updatedAt, updatedBy, trancheID)
	if err != nil {
		return fmt.Errorf("failed to update excuse on tranche %s: %w", trancheID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanTranche(row pgx.Row) (models.Tranche, error) {
	var m models.Tranche
	var excuseStatus *string
	err := row.Scan(
		&m.TrancheID,
		&m.EnrollmentID,
		&m.ExpectedAmount,
		&m.ExpectedPercent,
		&m.DueDate,
		&m.ActualAmount,
		&m.PaidAt,
		&m.PaymentMethod,
		&m.Reference,
		&m.ReceivedBy,
		&m.Notes,
		&m.HasExcuse,
		&m.ExcuseReason,
		&excuseStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Tranche{}, err
	}
	if excuseStatus != nil {
		m.ExcuseStatus = models.ExcuseStatus(*excuseStatus)
	}
	return m, nil
}

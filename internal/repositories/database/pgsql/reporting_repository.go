package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetProgramPaymentAggregate computes collection aggregates for one program:
// enrollment counts per status, expected vs collected totals, and the number
// of unpaid tranches already past due as of the given instant.
func (r *PgxReportingRepository) GetProgramPaymentAggregate(ctx context.Context, programID string, asOf time.Time) (*portsrepo.ProgramPaymentAggregate, error) {
	statusQuery := `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0)
		FROM enrollments
		WHERE program_id = $1
		GROUP BY status;
	`
	rows, err := r.db.Query(ctx, statusQuery, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment aggregates for program %s: %w", programID, err)
	}
	defer rows.Close()

	aggregate := &portsrepo.ProgramPaymentAggregate{
		TotalExpected:  decimal.Zero,
		TotalCollected: decimal.Zero,
		StatusCounts:   make(map[domain.EnrollmentStatus]int),
	}
	for rows.Next() {
		var status string
		var count int
		var expected, collected decimal.Decimal
		if err := rows.Scan(&status, &count, &expected, &collected); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment aggregate row: %w", err)
		}
		aggregate.StatusCounts[domain.EnrollmentStatus(status)] = count
		aggregate.EnrollmentCount += count
		aggregate.TotalExpected = aggregate.TotalExpected.Add(expected)
		aggregate.TotalCollected = aggregate.TotalCollected.Add(collected)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment aggregate rows: %w", rows.Err())
	}

	overdueQuery := `
		SELECT COUNT(*)
		FROM tranches t
		JOIN enrollments e ON e.enrollment_id = t.enrollment_id
		WHERE e.program_id = $1 AND t.paid_at IS NULL AND t.due_date < $2;
	`
	if err := r.db.QueryRow(ctx, overdueQuery, programID, asOf).Scan(&aggregate.OverdueTranches); err != nil {
		return nil, fmt.Errorf("failed to count overdue tranches for program %s: %w", programID, err)
	}

	return aggregate, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	"github.com/codinglive/codinglive_app/internal/models"
	"github.com/codinglive/codinglive_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProgramRepository struct {
	BaseRepository
}

func newPgxProgramRepository(pool *pgxpool.Pool) portsrepo.ProgramRepositoryFacade {
	return &PgxProgramRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProgramRepository implements portsrepo.ProgramRepositoryFacade
var _ portsrepo.ProgramRepositoryFacade = (*PgxProgramRepository)(nil)

// SaveProgram persists the program and its tranche rules in one DB transaction.
func (r *PgxProgramRepository) SaveProgram(ctx context.Context, program domain.Program) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelProgram := mapping.ToModelProgram(program)
	programQuery := `
		INSERT INTO programs (program_id, name, description, total_amount, currency_code, start_date,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, programQuery,
		modelProgram.ProgramID,
		modelProgram.Name,
		modelProgram.Description,
		modelProgram.TotalAmount,
		modelProgram.CurrencyCode,
		modelProgram.StartDate,
		modelProgram.CreatedAt,
		modelProgram.CreatedBy,
		modelProgram.LastUpdatedAt,
		modelProgram.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert program %s: %w", modelProgram.ProgramID, err)
	}

	if len(program.TrancheRules) > 0 {
		batch := &pgx.Batch{}
		ruleQuery := `
			INSERT INTO program_tranche_rules (rule_id, program_id, percent, due_week)
			VALUES ($1, $2, $3, $4);
		`
		for _, rule := range program.TrancheRules {
			modelRule := mapping.ToModelTrancheRule(rule)
			batch.Queue(ruleQuery,
				modelRule.RuleID,
				modelRule.ProgramID,
				modelRule.Percent,
				modelRule.DueWeek,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert tranche rules for program %s: %w", modelProgram.ProgramID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProgramRepository) FindProgramByID(ctx context.Context, programID string) (*domain.Program, error) {
	query := `
		SELECT program_id, name, description, total_amount, currency_code, start_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM programs
		WHERE program_id = $1;
	`
	var modelProgram models.Program
	err := r.Pool.QueryRow(ctx, query, programID).Scan(
		&modelProgram.ProgramID,
		&modelProgram.Name,
		&modelProgram.Description,
		&modelProgram.TotalAmount,
		&modelProgram.CurrencyCode,
		&modelProgram.StartDate,
		&modelProgram.CreatedAt,
		&modelProgram.CreatedBy,
		&modelProgram.LastUpdatedAt,
		&modelProgram.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find program by ID %s: %w", programID, err)
	}

	rules, err := r.findTrancheRules(ctx, programID)
	if err != nil {
		return nil, err
	}

	domainProgram := mapping.ToDomainProgram(modelProgram, rules)
	return &domainProgram, nil
}

func (r *PgxProgramRepository) findTrancheRules(ctx context.Context, programID string) ([]models.TrancheRule, error) {
	query := `
		SELECT rule_id, program_id, percent, due_week
		FROM program_tranche_rules
		WHERE program_id = $1
		ORDER BY due_week;
	`
	rows, err := r.Pool.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tranche rules for program %s: %w", programID, err)
	}
	defer rows.Close()

	rules := []models.TrancheRule{}
	for rows.Next() {
		var rule models.TrancheRule
		if err := rows.Scan(&rule.RuleID, &rule.ProgramID, &rule.Percent, &rule.DueWeek); err != nil {
			return nil, fmt.Errorf("failed to scan tranche rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating tranche rule rows: %w", rows.Err())
	}
	return rules, nil
}

func (r *PgxProgramRepository) ListPrograms(ctx context.Context, limit int, offset int) ([]domain.Program, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT program_id, name, description, total_amount, currency_code, start_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM programs
		ORDER BY start_date DESC, program_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	return scanDomainPrograms(rows)
}

func (r *PgxProgramRepository) ListProgramsByTeacher(ctx context.Context, userID string) ([]domain.Program, error) {
	query := `
		SELECT p.program_id, p.name, p.description, p.total_amount, p.currency_code, p.start_date,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM programs p
		JOIN program_teachers pt ON pt.program_id = p.program_id
		WHERE pt.user_id = $1
		ORDER BY p.start_date DESC, p.program_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs for teacher %s: %w", userID, err)
	}
	defer rows.Close()

	return scanDomainPrograms(rows)
}

func scanDomainPrograms(rows pgx.Rows) ([]domain.Program, error) {
	programs := []domain.Program{}
	for rows.Next() {
		var m models.Program
		err := rows.Scan(
			&m.ProgramID,
			&m.Name,
			&m.Description,
			&m.TotalAmount,
			&m.CurrencyCode,
			&m.StartDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, mapping.ToDomainProgram(m, nil))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", rows.Err())
	}
	return programs, nil
}

func (r *PgxProgramRepository) UpdateProgram(ctx context.Context, program domain.Program) error {
	modelProgram := mapping.ToModelProgram(program)
	query := `
		UPDATE programs
		SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE program_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelProgram.Name,
		modelProgram.Description,
		modelProgram.LastUpdatedAt,
		modelProgram.LastUpdatedBy,
		modelProgram.ProgramID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update program query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("program not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProgramRepository) AddTeacherToProgram(ctx context.Context, staffing domain.ProgramTeacher) error {
	query := `
		INSERT INTO program_teachers (user_id, program_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		staffing.UserID,
		staffing.ProgramID,
		staffing.Role,
		staffing.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("teacher %s already staffed on program %s: %w", staffing.UserID, staffing.ProgramID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to add teacher to program: %w", err)
	}
	return nil
}

func (r *PgxProgramRepository) FindProgramTeacherRole(ctx context.Context, userID, programID string) (*domain.ProgramTeacher, error) {
	query := `
		SELECT user_id, program_id, role, joined_at
		FROM program_teachers
		WHERE user_id = $1 AND program_id = $2;
	`
	var m models.ProgramTeacher
	err := r.Pool.QueryRow(ctx, query, userID, programID).Scan(
		&m.UserID,
		&m.ProgramID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staffing for user %s on program %s: %w", userID, programID, err)
	}

	staffing := mapping.ToDomainProgramTeacher(m)
	return &staffing, nil
}

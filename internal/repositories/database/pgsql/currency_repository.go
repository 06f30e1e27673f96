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

type PgxCurrencyRepository struct {
	db *pgxpool.Pool
}

func newPgxCurrencyRepository(db *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{db: db}
}

// Ensure PgxCurrencyRepository implements portsrepo.CurrencyRepositoryFacade
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurrency := mapping.ToModelCurrency(currency)
	query := `
        INSERT INTO currencies (currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelCurrency.CurrencyCode,
		modelCurrency.Symbol,
		modelCurrency.Name,
		modelCurrency.Precision,
		modelCurrency.CreatedAt,
		modelCurrency.CreatedBy,
		modelCurrency.LastUpdatedAt,
		modelCurrency.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("currency %s already exists: %w", currency.CurrencyCode, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save currency: %w", err)
	}
	return nil
}

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE currency_code = $1;
	`
	var modelCurrency models.Currency
	err := r.db.QueryRow(ctx, query, currencyCode).Scan(
		&modelCurrency.CurrencyCode,
		&modelCurrency.Symbol,
		&modelCurrency.Name,
		&modelCurrency.Precision,
		&modelCurrency.CreatedAt,
		&modelCurrency.CreatedBy,
		&modelCurrency.LastUpdatedAt,
		&modelCurrency.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}

	domainCurrency := mapping.ToDomainCurrency(modelCurrency)
	return &domainCurrency, nil
}

func (r *PgxCurrencyRepository) FindCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
        SELECT currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by
        FROM currencies
        ORDER BY currency_code;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := []domain.Currency{}
	for rows.Next() {
		var modelCurrency models.Currency
		err := rows.Scan(
			&modelCurrency.CurrencyCode,
			&modelCurrency.Symbol,
			&modelCurrency.Name,
			&modelCurrency.Precision,
			&modelCurrency.CreatedAt,
			&modelCurrency.CreatedBy,
			&modelCurrency.LastUpdatedAt,
			&modelCurrency.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency row: %w", err)
		}
		currencies = append(currencies, mapping.ToDomainCurrency(modelCurrency))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating currency rows: %w", rows.Err())
	}

	return currencies, nil
}

package services

import (
	"context"

	"github.com/codinglive/codinglive_app/internal/core/domain"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// CurrencySvcFacade defines operations for currency data.
type CurrencySvcFacade interface {
	// CreateCurrency adds a currency programs can price in.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its ISO code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portsrepo "github.com/codinglive/codinglive_app/internal/core/ports/repositories"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

// currencyService implements the CurrencySvcFacade interface
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service with the provided dependencies
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// Ensure currencyService implements the CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency adds a currency programs can price in
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", req.CurrencyCode))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its ISO code
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency by code")
		}
		return nil, err
	}
	return currency, nil
}

// ListCurrencies retrieves all currencies
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.FindCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

package dto

import "github.com/codinglive/codinglive_app/internal/core/domain"

// CreateCurrencyRequest defines data for adding a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=8"`
}

// CurrencyResponse defines data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse converts a domain.Currency to DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
	}
}

// ListCurrenciesResponse wraps a list of currencies.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse converts a slice of domain.Currency to DTO.
func ToListCurrenciesResponse(cs []domain.Currency) ListCurrenciesResponse {
	list := make([]CurrencyResponse, len(cs))
	for i := range cs {
		list[i] = ToCurrencyResponse(&cs[i])
	}
	return ListCurrenciesResponse{Currencies: list}
}

package models

// Currency represents a currency row.
type Currency struct {
	CurrencyCode string `json:"currencyCode" db:"currency_code"`
	Symbol       string `json:"symbol" db:"symbol"`
	Name         string `json:"name" db:"name"`
	Precision    int    `json:"precision" db:"precision"`
	AuditFields
}

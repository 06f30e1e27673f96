package domain

// Currency represents a currency programs can be priced in.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 code (e.g., "USD")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"` // Number of decimal places
	AuditFields
}

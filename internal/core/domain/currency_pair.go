package domain

import "time"

// CurrencyPair is an ordered (from, to) pair of currencies. At most one pair
// exists per ordered tuple. Observe marks the pair for automatic periodic
// rate refresh by the worker; it is the only mutable field.
type CurrencyPair struct {
	PairID           string    `json:"pairID"` // Primary Key (UUID)
	FromCurrencyCode string    `json:"fromCurrencyCode"`
	ToCurrencyCode   string    `json:"toCurrencyCode"`
	Observe          bool      `json:"observe"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Label returns the human-readable "FROM → TO" form used in titles and logs.
func (p CurrencyPair) Label() string {
	return p.FromCurrencyCode + " → " + p.ToCurrencyCode
}

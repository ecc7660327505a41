package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one observation of a pair's rate at a point in time.
// Records are append-only: every fetch creates a new row, existing rows are
// never mutated. A pair's history is a time series read newest-first.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	PairID         string          `json:"pairID"`         // FK -> CurrencyPair.PairID
	Rate           decimal.Decimal `json:"rate"`           // positive, NUMERIC(20,10) in storage
	RateDate       time.Time       `json:"rateDate"`       // full date+time of the observation
}

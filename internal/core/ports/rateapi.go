package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyInfo is the provider's metadata payload for one currency.
type CurrencyInfo struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	SymbolNative  string          `json:"symbol_native"`
	DecimalDigits int             `json:"decimal_digits"`
	Rounding      decimal.Decimal `json:"rounding"`
	Code          string          `json:"code"`
	NamePlural    string          `json:"name_plural"`
	Type          string          `json:"type"`
}

// RateAPIClient is the logical contract to the external currency-data
// provider. Implementations surface non-2xx statuses, transport failures, and
// unparseable bodies as *apperrors.APIError.
type RateAPIClient interface {
	// ListCurrencies fetches metadata for the given codes, or for every
	// available currency when codes is empty.
	ListCurrencies(ctx context.Context, codes []string) (map[string]CurrencyInfo, error)
	// LatestRates fetches the current rates from base to each target.
	LatestRates(ctx context.Context, base string, targets []string) (map[string]decimal.Decimal, error)
	// HistoricalRates fetches the rates recorded on the given date.
	HistoricalRates(ctx context.Context, date time.Time, base string, targets []string) (map[string]decimal.Decimal, error)
}

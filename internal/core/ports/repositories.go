package ports

import (
	"context"

	"github.com/fxwatch/fxwatch/internal/core/domain"
)

// CurrencyRepository defines persistence operations for currency metadata.
type CurrencyRepository interface {
	// UpsertCurrency inserts the currency or overwrites its display fields
	// when the code already exists. Returns true when a new row was created.
	UpsertCurrency(ctx context.Context, currency domain.Currency) (bool, error)
	// FindCurrencyByCode returns apperrors.ErrNotFound when the code is unknown.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyPairRepository defines persistence operations for currency pairs.
type CurrencyPairRepository interface {
	SavePair(ctx context.Context, pair domain.CurrencyPair) error
	// FindPairByID returns apperrors.ErrNotFound when no pair has the id.
	FindPairByID(ctx context.Context, pairID string) (*domain.CurrencyPair, error)
	// FindPairByCodes returns apperrors.ErrNotFound when the ordered tuple is absent.
	FindPairByCodes(ctx context.Context, fromCode, toCode string) (*domain.CurrencyPair, error)
	// ListPairs returns all pairs, or only those involving filterCode (as
	// either side) when it is non-empty.
	ListPairs(ctx context.Context, filterCode string) ([]domain.CurrencyPair, error)
	// FindObservedPairs returns the pairs flagged for automatic refresh.
	// Absence is an empty slice, not an error.
	FindObservedPairs(ctx context.Context) ([]domain.CurrencyPair, error)
	SetObserve(ctx context.Context, pairID string, observe bool) error
}

// ExchangeRateRepository defines persistence operations for the append-only
// exchange-rate time series.
type ExchangeRateRepository interface {
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
	// FindLatestRate returns the record with the maximum timestamp for the
	// pair, or apperrors.ErrNotFound when the pair has no history yet.
	FindLatestRate(ctx context.Context, pairID string) (*domain.ExchangeRate, error)
	// FindRatesByFilter returns the records matching the filter, ordered by
	// timestamp descending. No match is an empty slice, not an error.
	FindRatesByFilter(ctx context.Context, pairID string, filter domain.RateFilter) ([]domain.ExchangeRate, error)
}

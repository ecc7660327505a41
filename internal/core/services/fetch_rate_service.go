package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/ports"
)

// FetchRateResult is the record created by a fetch plus a display string for
// command output and worker logs.
type FetchRateResult struct {
	Rate    domain.ExchangeRate
	Details string
}

// FetchRateService pulls the current rate for a pair from the provider and
// appends it to the pair's time series. Every fetch creates a new record.
type FetchRateService struct {
	pairRepo  ports.CurrencyPairRepository
	rateRepo  ports.ExchangeRateRepository
	apiClient ports.RateAPIClient
}

func NewFetchRateService(pairRepo ports.CurrencyPairRepository, rateRepo ports.ExchangeRateRepository, apiClient ports.RateAPIClient) *FetchRateService {
	return &FetchRateService{
		pairRepo:  pairRepo,
		rateRepo:  rateRepo,
		apiClient: apiClient,
	}
}

// FetchRate resolves the pair by id and fetches+stores its latest rate.
func (s *FetchRateService) FetchRate(ctx context.Context, pairID string) (*FetchRateResult, error) {
	pair, err := s.pairRepo.FindPairByID(ctx, pairID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("currency pair with id '%s' not found", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find currency pair: %w", err)
	}
	return s.FetchRateForPair(ctx, *pair)
}

// FetchRateForPair fetches and stores the latest rate for an already-resolved
// pair. Used directly by the worker, which resolves pairs in bulk.
func (s *FetchRateService) FetchRateForPair(ctx context.Context, pair domain.CurrencyPair) (*FetchRateResult, error) {
	rates, err := s.apiClient.LatestRates(ctx, pair.FromCurrencyCode, []string{pair.ToCurrencyCode})
	if err != nil {
		return nil, err
	}

	value, ok := rates[pair.ToCurrencyCode]
	if !ok {
		return nil, &apperrors.APIError{
			Err: fmt.Errorf("no rate for %s in provider response", pair.Label()),
		}
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		PairID:         pair.PairID,
		Rate:           value,
		RateDate:       now,
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	return &FetchRateResult{
		Rate: rate,
		Details: fmt.Sprintf("1 %s = %s %s (as of %s)",
			pair.FromCurrencyCode, value.String(), pair.ToCurrencyCode, now.Format("2006-01-02 15:04:05")),
	}, nil
}

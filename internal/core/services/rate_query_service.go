package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/ports"
)

// RateQueryResult is everything the presentation layer needs to render a rate
// lookup: the matched records (newest first), the filter that matched them,
// and ready-made title/summary strings.
type RateQueryResult struct {
	Pair              domain.CurrencyPair
	Rates             []domain.ExchangeRate
	Filter            domain.RateFilter
	FilterDescription string
	Count             int
	Title             string
}

// Summary describes the result in one line. Zero matches is a valid state
// and gets a "no rates found" message rather than an error.
func (r *RateQueryResult) Summary() string {
	if r.Count == 0 {
		return fmt.Sprintf("No exchange rates found for %s %s", r.Pair.Label(), r.FilterDescription)
	}
	return fmt.Sprintf("Found %d exchange rate(s) for %s %s", r.Count, r.Pair.Label(), r.FilterDescription)
}

// RateQueryService answers historical rate lookups for a pair, delegating
// filter construction to domain.ParseRateFilter and record retrieval to the
// rate repository.
type RateQueryService struct {
	pairRepo ports.CurrencyPairRepository
	rateRepo ports.ExchangeRateRepository
}

func NewRateQueryService(pairRepo ports.CurrencyPairRepository, rateRepo ports.ExchangeRateRepository) *RateQueryService {
	return &RateQueryService{pairRepo: pairRepo, rateRepo: rateRepo}
}

// GetPairRates returns the rate records for the pair matching the raw date
// tokens. rawDate/rawToDate may both be empty (latest only), name a day, an
// exact timestamp, an inclusive range, or the literal "all".
func (s *RateQueryService) GetPairRates(ctx context.Context, pairID, rawDate, rawToDate string) (*RateQueryResult, error) {
	pair, err := s.pairRepo.FindPairByID(ctx, pairID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("currency pair with id '%s' not found", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find currency pair: %w", err)
	}

	filter, err := domain.ParseRateFilter(rawDate, rawToDate)
	if err != nil {
		return nil, err
	}

	var rates []domain.ExchangeRate
	if filter.Kind == domain.FilterLatest {
		latest, err := s.rateRepo.FindLatestRate(ctx, pair.PairID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			// No history yet; an empty result, not a failure.
		case err != nil:
			return nil, fmt.Errorf("failed to find latest rate: %w", err)
		default:
			rates = []domain.ExchangeRate{*latest}
		}
	} else {
		rates, err = s.rateRepo.FindRatesByFilter(ctx, pair.PairID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to query rates: %w", err)
		}
	}

	description := filter.Description()
	return &RateQueryResult{
		Pair:              *pair,
		Rates:             rates,
		Filter:            filter,
		FilterDescription: description,
		Count:             len(rates),
		Title:             buildTitle(*pair, filter, description),
	}, nil
}

func buildTitle(pair domain.CurrencyPair, filter domain.RateFilter, description string) string {
	if filter.Kind == domain.FilterLatest {
		return fmt.Sprintf("Latest exchange rate for %s", pair.Label())
	}
	return fmt.Sprintf("Exchange rates for %s (%s)", pair.Label(), description)
}

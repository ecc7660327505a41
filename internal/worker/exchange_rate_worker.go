package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/ports"
	"github.com/fxwatch/fxwatch/internal/core/services"
)

// RateFetcher fetches and stores the latest rate for one pair.
// *services.FetchRateService satisfies it.
type RateFetcher interface {
	FetchRateForPair(ctx context.Context, pair domain.CurrencyPair) (*services.FetchRateResult, error)
}

const exchangeRateWorkerName = "exchange_rate"

// ExchangeRateWorker refreshes rates for all observed currency pairs once per
// tick. A single pair's failure never aborts the tick: the error is logged
// and the remaining pairs are still processed.
type ExchangeRateWorker struct {
	pairRepo      ports.CurrencyPairRepository
	fetcher       RateFetcher
	logger        *slog.Logger
	metrics       *Metrics
	sleepInterval time.Duration
}

func NewExchangeRateWorker(pairRepo ports.CurrencyPairRepository, fetcher RateFetcher, logger *slog.Logger, metrics *Metrics) *ExchangeRateWorker {
	return &ExchangeRateWorker{
		pairRepo:      pairRepo,
		fetcher:       fetcher,
		logger:        logger,
		metrics:       metrics,
		sleepInterval: 60 * time.Second,
	}
}

func (w *ExchangeRateWorker) Name() string {
	return exchangeRateWorkerName
}

func (w *ExchangeRateWorker) SleepInterval() time.Duration {
	return w.sleepInterval
}

// SetSleepInterval changes the pause between iterations. Takes effect from
// the next tick; call before Start for a custom interval from the beginning.
func (w *ExchangeRateWorker) SetSleepInterval(d time.Duration) {
	w.sleepInterval = d
}

// Process performs one tick: list observed pairs and fetch+store the latest
// rate for each one independently.
func (w *ExchangeRateWorker) Process(ctx context.Context) error {
	w.logger.Info("fetching exchange rates for observed currency pairs")

	pairs, err := w.pairRepo.FindObservedPairs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list observed pairs: %w", err)
	}

	if len(pairs) == 0 {
		w.logger.Info("no observed currency pairs found")
		return nil
	}

	w.logger.Info("found observed currency pairs", slog.Int("count", len(pairs)))

	for _, pair := range pairs {
		w.processPair(ctx, pair)
	}

	if w.metrics != nil {
		w.metrics.TicksTotal.WithLabelValues(w.Name()).Inc()
	}
	return nil
}

func (w *ExchangeRateWorker) processPair(ctx context.Context, pair domain.CurrencyPair) {
	label := pair.Label()
	w.logger.Info("fetching exchange rate", slog.String("pair", label))

	result, err := w.fetcher.FetchRateForPair(ctx, pair)
	if err != nil {
		if w.metrics != nil {
			w.metrics.FetchFailureTotal.WithLabelValues(label).Inc()
		}
		w.logger.Error("failed to fetch exchange rate",
			slog.String("pair", label), slog.String("error", err.Error()))
		return
	}

	if w.metrics != nil {
		w.metrics.FetchSuccessTotal.WithLabelValues(label).Inc()
	}
	w.logger.Info("fetched exchange rate",
		slog.String("pair", label), slog.String("details", result.Details))
}

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/services"
	"github.com/fxwatch/fxwatch/internal/worker"
)

// --- Mock CurrencyPairRepository ---
type MockCurrencyPairRepository struct {
	mock.Mock
}

func (m *MockCurrencyPairRepository) SavePair(ctx context.Context, pair domain.CurrencyPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockCurrencyPairRepository) FindPairByID(ctx context.Context, pairID string) (*domain.CurrencyPair, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPair), args.Error(1)
}

func (m *MockCurrencyPairRepository) FindPairByCodes(ctx context.Context, fromCode, toCode string) (*domain.CurrencyPair, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPair), args.Error(1)
}

func (m *MockCurrencyPairRepository) ListPairs(ctx context.Context, filterCode string) ([]domain.CurrencyPair, error) {
	args := m.Called(ctx, filterCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyPair), args.Error(1)
}

func (m *MockCurrencyPairRepository) FindObservedPairs(ctx context.Context) ([]domain.CurrencyPair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyPair), args.Error(1)
}

func (m *MockCurrencyPairRepository) SetObserve(ctx context.Context, pairID string, observe bool) error {
	args := m.Called(ctx, pairID, observe)
	return args.Error(0)
}

// --- Mock RateFetcher ---
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRateForPair(ctx context.Context, pair domain.CurrencyPair) (*services.FetchRateResult, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FetchRateResult), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateWorkerTestSuite struct {
	suite.Suite
	mockPairRepo *MockCurrencyPairRepository
	mockFetcher  *MockRateFetcher
	worker       *worker.ExchangeRateWorker
	usdEur       domain.CurrencyPair
	usdGbp       domain.CurrencyPair
}

func (s *ExchangeRateWorkerTestSuite) SetupTest() {
	s.mockPairRepo = new(MockCurrencyPairRepository)
	s.mockFetcher = new(MockRateFetcher)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := worker.NewMetrics(prometheus.NewRegistry())
	s.worker = worker.NewExchangeRateWorker(s.mockPairRepo, s.mockFetcher, logger, metrics)

	s.usdEur = domain.CurrencyPair{PairID: "pair-1", FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Observe: true}
	s.usdGbp = domain.CurrencyPair{PairID: "pair-2", FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Observe: true}
}

func fetchResult(pair domain.CurrencyPair, raw string) *services.FetchRateResult {
	return &services.FetchRateResult{
		Rate: domain.ExchangeRate{
			ExchangeRateID: "rate-" + pair.PairID,
			PairID:         pair.PairID,
			Rate:           decimal.RequireFromString(raw),
			RateDate:       time.Now(),
		},
		Details: "1 " + pair.FromCurrencyCode + " = " + raw + " " + pair.ToCurrencyCode,
	}
}

func (s *ExchangeRateWorkerTestSuite) TestProcessContinuesAfterPairFailure() {
	ctx := context.Background()

	s.mockPairRepo.On("FindObservedPairs", ctx).
		Return([]domain.CurrencyPair{s.usdEur, s.usdGbp}, nil).Once()
	s.mockFetcher.On("FetchRateForPair", ctx, s.usdEur).
		Return(nil, &apperrors.APIError{StatusCode: 502, Body: "bad gateway"}).Once()
	s.mockFetcher.On("FetchRateForPair", ctx, s.usdGbp).
		Return(fetchResult(s.usdGbp, "0.79"), nil).Once()

	err := s.worker.Process(ctx)

	s.Require().NoError(err)
	s.mockFetcher.AssertExpectations(s.T())
}

func (s *ExchangeRateWorkerTestSuite) TestProcessNoObservedPairs() {
	ctx := context.Background()

	s.mockPairRepo.On("FindObservedPairs", ctx).Return([]domain.CurrencyPair{}, nil).Once()

	err := s.worker.Process(ctx)

	s.Require().NoError(err)
	s.mockFetcher.AssertNotCalled(s.T(), "FetchRateForPair", mock.Anything, mock.Anything)
}

func (s *ExchangeRateWorkerTestSuite) TestProcessListFailure() {
	ctx := context.Background()

	s.mockPairRepo.On("FindObservedPairs", ctx).
		Return(nil, apperrors.ErrInfrastructure).Once()

	err := s.worker.Process(ctx)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInfrastructure)
	s.mockFetcher.AssertNotCalled(s.T(), "FetchRateForPair", mock.Anything, mock.Anything)
}

func (s *ExchangeRateWorkerTestSuite) TestSingleIterationThroughRunner() {
	ctx := context.Background()

	s.mockPairRepo.On("FindObservedPairs", ctx).
		Return([]domain.CurrencyPair{s.usdEur, s.usdGbp}, nil).Once()
	s.mockFetcher.On("FetchRateForPair", ctx, s.usdEur).
		Return(fetchResult(s.usdEur, "0.85"), nil).Once()
	s.mockFetcher.On("FetchRateForPair", ctx, s.usdGbp).
		Return(fetchResult(s.usdGbp, "0.79"), nil).Once()

	s.worker.SetSleepInterval(time.Millisecond)
	runner := worker.NewRunner(s.T().TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := runner.Start(ctx, s.worker, 1)

	s.Require().NoError(err)
	s.False(runner.IsRunning(s.worker.Name()))
	s.mockPairRepo.AssertExpectations(s.T())
	s.mockFetcher.AssertExpectations(s.T())
}

func TestExchangeRateWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateWorkerTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/services"
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

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, pairID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRatesByFilter(ctx context.Context, pairID string, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, pairID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type RateQueryServiceTestSuite struct {
	suite.Suite
	mockPairRepo *MockCurrencyPairRepository
	mockRateRepo *MockExchangeRateRepository
	service      *services.RateQueryService
	pair         domain.CurrencyPair
}

func (s *RateQueryServiceTestSuite) SetupTest() {
	s.mockPairRepo = new(MockCurrencyPairRepository)
	s.mockRateRepo = new(MockExchangeRateRepository)
	s.service = services.NewRateQueryService(s.mockPairRepo, s.mockRateRepo)
	s.pair = domain.CurrencyPair{
		PairID:           "pair-1",
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Observe:          true,
	}
}

func (s *RateQueryServiceTestSuite) TestLatestReturnsSingleRecord() {
	ctx := context.Background()
	latest := domain.ExchangeRate{
		ExchangeRateID: "rate-1",
		PairID:         s.pair.PairID,
		Rate:           decimal.RequireFromString("0.85"),
		RateDate:       time.Now(),
	}

	s.mockPairRepo.On("FindPairByID", ctx, "pair-1").Return(&s.pair, nil).Once()
	s.mockRateRepo.On("FindLatestRate", ctx, "pair-1").Return(&latest, nil).Once()

	result, err := s.service.GetPairRates(ctx, "pair-1", "", "")

	s.Require().NoError(err)
	s.Equal(1, result.Count)
	s.Equal("latest", result.FilterDescription)
	s.Equal("Latest exchange rate for USD → EUR", result.Title)
	s.Equal("Found 1 exchange rate(s) for USD → EUR latest", result.Summary())

	s.mockPairRepo.AssertExpectations(s.T())
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *RateQueryServiceTestSuite) TestLatestWithNoHistoryIsEmptyNotError() {
	ctx := context.Background()

	s.mockPairRepo.On("FindPairByID", ctx, "pair-1").Return(&s.pair, nil).Once()
	s.mockRateRepo.On("FindLatestRate", ctx, "pair-1").
		Return(nil, apperrors.NewNotFoundError("no exchange rates for pair 'pair-1'")).Once()

	result, err := s.service.GetPairRates(ctx, "pair-1", "", "")

	s.Require().NoError(err)
	s.Equal(0, result.Count)
	s.Empty(result.Rates)
	s.Equal("No exchange rates found for USD → EUR latest", result.Summary())
}

func (s *RateQueryServiceTestSuite) TestDayBucketFilterIsPassedThrough() {
	ctx := context.Background()

	s.mockPairRepo.On("FindPairByID", ctx, "pair-1").Return(&s.pair, nil).Once()
	s.mockRateRepo.On("FindRatesByFilter", ctx, "pair-1", mock.MatchedBy(func(f domain.RateFilter) bool {
		return f.Kind == domain.FilterDayBucket &&
			f.From.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)) &&
			f.To.Equal(time.Date(2023, 1, 2, 0, 0, 0, 0, time.Local))
	})).Return([]domain.ExchangeRate{}, nil).Once()

	result, err := s.service.GetPairRates(ctx, "pair-1", "2023-01-01", "")

	s.Require().NoError(err)
	s.Equal(0, result.Count)
	s.Equal("Exchange rates for USD → EUR (on 2023-01-01)", result.Title)
	s.Equal("No exchange rates found for USD → EUR on 2023-01-01", result.Summary())
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *RateQueryServiceTestSuite) TestUnknownPair() {
	ctx := context.Background()

	s.mockPairRepo.On("FindPairByID", ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("currency pair with id 'missing' not found")).Once()

	result, err := s.service.GetPairRates(ctx, "missing", "", "")

	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Contains(err.Error(), "missing")
}

func (s *RateQueryServiceTestSuite) TestInvalidRangeNeverHitsStore() {
	ctx := context.Background()

	s.mockPairRepo.On("FindPairByID", ctx, "pair-1").Return(&s.pair, nil).Once()

	_, err := s.service.GetPairRates(ctx, "pair-1", "2023-01-02", "2023-01-01")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidRange)
	s.mockRateRepo.AssertNotCalled(s.T(), "FindRatesByFilter", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateQueryServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/services"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) UpsertCurrency(ctx context.Context, currency domain.Currency) (bool, error) {
	args := m.Called(ctx, currency)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type CurrencyPairServiceTestSuite struct {
	suite.Suite
	mockPairRepo     *MockCurrencyPairRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.CurrencyPairService
}

func (s *CurrencyPairServiceTestSuite) SetupTest() {
	s.mockPairRepo = new(MockCurrencyPairRepository)
	s.mockCurrencyRepo = new(MockCurrencyRepository)
	s.service = services.NewCurrencyPairService(s.mockPairRepo, s.mockCurrencyRepo)
}

func (s *CurrencyPairServiceTestSuite) expectCurrencyExists(code string) {
	s.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).
		Return(&domain.Currency{CurrencyCode: code}, nil).Once()
}

func (s *CurrencyPairServiceTestSuite) TestCreatePairSuccess() {
	ctx := context.Background()
	s.expectCurrencyExists("USD")
	s.expectCurrencyExists("EUR")
	s.mockPairRepo.On("FindPairByCodes", ctx, "USD", "EUR").
		Return(nil, apperrors.NewNotFoundError("currency pair USD → EUR not found")).Once()
	s.mockPairRepo.On("SavePair", ctx, mock.AnythingOfType("domain.CurrencyPair")).Return(nil).Once()

	result, err := s.service.CreatePair(ctx, "usd", "eur", true)

	s.Require().NoError(err)
	s.True(result.Success)
	s.Require().NotNil(result.Pair)
	s.NotEmpty(result.Pair.PairID)
	s.Equal("USD", result.Pair.FromCurrencyCode)
	s.Equal("EUR", result.Pair.ToCurrencyCode)
	s.True(result.Pair.Observe)
	s.mockPairRepo.AssertExpectations(s.T())
}

func (s *CurrencyPairServiceTestSuite) TestCreatePairDuplicateReturnsOriginalUnchanged() {
	ctx := context.Background()
	existing := domain.CurrencyPair{
		PairID:           "pair-1",
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Observe:          false,
	}

	s.expectCurrencyExists("USD")
	s.expectCurrencyExists("EUR")
	s.mockPairRepo.On("FindPairByCodes", ctx, "USD", "EUR").Return(&existing, nil).Once()

	result, err := s.service.CreatePair(ctx, "USD", "EUR", true)

	s.Require().NoError(err)
	s.False(result.Success)
	s.Require().NotNil(result.Pair)
	s.Equal(existing, *result.Pair)
	s.Contains(result.Message, "already exists")
	s.mockPairRepo.AssertNotCalled(s.T(), "SavePair", mock.Anything, mock.Anything)
}

func (s *CurrencyPairServiceTestSuite) TestCreatePairSameCurrency() {
	result, err := s.service.CreatePair(context.Background(), "USD", "USD", true)

	s.Require().NoError(err)
	s.False(result.Success)
	s.Nil(result.Pair)
	s.Contains(result.Message, "cannot be the same")
	s.mockCurrencyRepo.AssertNotCalled(s.T(), "FindCurrencyByCode", mock.Anything, mock.Anything)
}

func (s *CurrencyPairServiceTestSuite) TestCreatePairMissingCurrency() {
	ctx := context.Background()
	s.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(nil, apperrors.NewNotFoundError("currency 'USD' not found")).Once()

	result, err := s.service.CreatePair(ctx, "USD", "EUR", true)

	s.Require().NoError(err)
	s.False(result.Success)
	s.Contains(result.Message, "'USD' not found")
	s.mockPairRepo.AssertNotCalled(s.T(), "SavePair", mock.Anything, mock.Anything)
}

func (s *CurrencyPairServiceTestSuite) TestCreatePairBadCode() {
	_, err := s.service.CreatePair(context.Background(), "US", "EURO", true)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CurrencyPairServiceTestSuite) TestSetObserveStatus() {
	ctx := context.Background()
	pair := domain.CurrencyPair{PairID: "pair-1", FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}

	s.mockPairRepo.On("FindPairByID", ctx, "pair-1").Return(&pair, nil).Once()
	s.mockPairRepo.On("SetObserve", ctx, "pair-1", true).Return(nil).Once()

	updated, err := s.service.SetObserveStatus(ctx, "pair-1", "on")

	s.Require().NoError(err)
	s.True(updated.Observe)
	s.mockPairRepo.AssertExpectations(s.T())
}

func (s *CurrencyPairServiceTestSuite) TestSetObserveStatusMalformed() {
	_, err := s.service.SetObserveStatus(context.Background(), "pair-1", "maybe")
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPairRepo.AssertNotCalled(s.T(), "FindPairByID", mock.Anything, mock.Anything)
}

func TestCurrencyPairServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyPairServiceTestSuite))
}

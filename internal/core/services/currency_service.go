package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/ports"
)

// CurrencySyncResult reports what a metadata sync changed.
type CurrencySyncResult struct {
	Currencies []domain.Currency
	Added      []string
	Updated    []string
}

// CurrencyService keeps local currency metadata in sync with the rate
// provider and answers simple lookups.
type CurrencyService struct {
	currencyRepo ports.CurrencyRepository
	apiClient    ports.RateAPIClient
}

func NewCurrencyService(currencyRepo ports.CurrencyRepository, apiClient ports.RateAPIClient) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, apiClient: apiClient}
}

// FetchCurrencies pulls metadata for the given codes (all currencies when
// empty) and upserts each record. Display fields of already-known currencies
// are overwritten; the code is the stable identity.
func (s *CurrencyService) FetchCurrencies(ctx context.Context, codes []string) (*CurrencySyncResult, error) {
	infos, err := s.apiClient.ListCurrencies(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch currencies from provider: %w", err)
	}

	result := &CurrencySyncResult{}
	now := time.Now()

	// Map iteration order is random; sort for stable output and logs.
	sortedCodes := make([]string, 0, len(infos))
	for code := range infos {
		sortedCodes = append(sortedCodes, code)
	}
	sort.Strings(sortedCodes)

	for _, code := range sortedCodes {
		info := infos[code]
		currency := domain.Currency{
			CurrencyCode:  strings.ToUpper(code),
			Name:          info.Name,
			Symbol:        info.Symbol,
			SymbolNative:  info.SymbolNative,
			DecimalDigits: info.DecimalDigits,
			Rounding:      info.Rounding,
			NamePlural:    info.NamePlural,
			Type:          info.Type,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		created, err := s.currencyRepo.UpsertCurrency(ctx, currency)
		if err != nil {
			return nil, fmt.Errorf("failed to save currency %s: %w", currency.CurrencyCode, err)
		}
		result.Currencies = append(result.Currencies, currency)
		if created {
			result.Added = append(result.Added, currency.CurrencyCode)
		} else {
			result.Updated = append(result.Updated, currency.CurrencyCode)
		}
	}

	return result, nil
}

// GetCurrencyByCode looks up one currency; apperrors.ErrNotFound when unknown.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

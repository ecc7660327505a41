package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
	"github.com/fxwatch/fxwatch/internal/core/ports"
)

// CreatePairResult reports the outcome of a pair creation attempt. Duplicate
// and validation outcomes are ordinary results, not errors: the caller gets
// Success=false, a message, and (for duplicates) the existing pair unchanged.
type CreatePairResult struct {
	Success bool
	Message string
	Pair    *domain.CurrencyPair
}

// PairListResult carries the pairs plus the context the presentation layer
// needs for titles and summaries.
type PairListResult struct {
	Pairs      []domain.CurrencyPair
	Title      string
	FilterCode string
	Count      int
}

type createPairInput struct {
	FromCode string `validate:"required,len=3,alpha"`
	ToCode   string `validate:"required,len=3,alpha"`
}

// CurrencyPairService manages the ordered currency pairs the worker
// schedules against.
type CurrencyPairService struct {
	pairRepo     ports.CurrencyPairRepository
	currencyRepo ports.CurrencyRepository
	validate     *validator.Validate
}

func NewCurrencyPairService(pairRepo ports.CurrencyPairRepository, currencyRepo ports.CurrencyRepository) *CurrencyPairService {
	return &CurrencyPairService{
		pairRepo:     pairRepo,
		currencyRepo: currencyRepo,
		validate:     validator.New(),
	}
}

// CreatePair creates the ordered (from, to) pair after checking that both
// currencies exist locally, that from differs from to, and that the tuple is
// not already registered.
func (s *CurrencyPairService) CreatePair(ctx context.Context, fromCode, toCode string, observe bool) (*CreatePairResult, error) {
	fromCode = strings.ToUpper(strings.TrimSpace(fromCode))
	toCode = strings.ToUpper(strings.TrimSpace(toCode))

	if err := s.validate.Struct(createPairInput{FromCode: fromCode, ToCode: toCode}); err != nil {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	if fromCode == toCode {
		return &CreatePairResult{Success: false, Message: "From and To currencies cannot be the same."}, nil
	}

	for _, code := range []string{fromCode, toCode} {
		_, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
		if errors.Is(err, apperrors.ErrNotFound) {
			return &CreatePairResult{
				Success: false,
				Message: fmt.Sprintf("Currency '%s' not found. Fetch currencies first with the currency:fetch command.", code),
			}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up currency %s: %w", code, err)
		}
	}

	existing, err := s.pairRepo.FindPairByCodes(ctx, fromCode, toCode)
	if err == nil {
		return &CreatePairResult{
			Success: false,
			Message: fmt.Sprintf("Currency pair %s → %s already exists.", fromCode, toCode),
			Pair:    existing,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing pair: %w", err)
	}

	now := time.Now()
	pair := domain.CurrencyPair{
		PairID:           uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Observe:          observe,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.pairRepo.SavePair(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to save currency pair: %w", err)
	}

	return &CreatePairResult{
		Success: true,
		Message: fmt.Sprintf("Currency pair %s created.", pair.Label()),
		Pair:    &pair,
	}, nil
}

// GetPairByID resolves a pair id; apperrors.ErrNotFound names the id.
func (s *CurrencyPairService) GetPairByID(ctx context.Context, pairID string) (*domain.CurrencyPair, error) {
	pair, err := s.pairRepo.FindPairByID(ctx, pairID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("currency pair with id '%s' not found", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find currency pair: %w", err)
	}
	return pair, nil
}

// ListPairs lists all pairs, or only those involving filterCode on either side.
func (s *CurrencyPairService) ListPairs(ctx context.Context, filterCode string) (*PairListResult, error) {
	filterCode = strings.ToUpper(strings.TrimSpace(filterCode))

	pairs, err := s.pairRepo.ListPairs(ctx, filterCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency pairs: %w", err)
	}

	title := "All currency pairs"
	if filterCode != "" {
		title = fmt.Sprintf("Currency pairs involving %s", filterCode)
	}

	return &PairListResult{
		Pairs:      pairs,
		Title:      title,
		FilterCode: filterCode,
		Count:      len(pairs),
	}, nil
}

// SetObserveStatus flips the observe flag. Accepted statuses are on/off and
// true/false; anything else is a validation error.
func (s *CurrencyPairService) SetObserveStatus(ctx context.Context, pairID, status string) (*domain.CurrencyPair, error) {
	var observe bool
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "on", "true":
		observe = true
	case "off", "false":
		observe = false
	default:
		return nil, apperrors.NewValidationError("invalid observe status %q, expected on/off", status)
	}

	pair, err := s.GetPairByID(ctx, pairID)
	if err != nil {
		return nil, err
	}

	if err := s.pairRepo.SetObserve(ctx, pair.PairID, observe); err != nil {
		return nil, fmt.Errorf("failed to update observe status: %w", err)
	}

	pair.Observe = observe
	return pair, nil
}

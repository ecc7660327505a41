package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
)

// PgxExchangeRateRepository implements ports.ExchangeRateRepository using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

const rateColumns = `exchange_rate_id, pair_id, rate, rate_date`

// SaveRate appends a new rate observation. Rows are never updated.
func (r *PgxExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4)`,
		rate.ExchangeRateID, rate.PairID, rate.Rate, rate.RateDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}
	return nil
}

// FindLatestRate returns the newest record for the pair.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, pairID string) (*domain.ExchangeRate, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+rateColumns+` FROM exchange_rates
		WHERE pair_id = $1
		ORDER BY rate_date DESC
		LIMIT 1`, pairID)

	var rate domain.ExchangeRate
	err := row.Scan(&rate.ExchangeRateID, &rate.PairID, &rate.Rate, &rate.RateDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no exchange rates for pair '%s'", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rate: %w", err)
	}
	return &rate, nil
}

// FindRatesByFilter returns the records matching the parsed date filter,
// ordered by timestamp descending. The day bucket is half-open, the range
// inclusive, and the exact-timestamp variant matches by strict equality.
func (r *PgxExchangeRateRepository) FindRatesByFilter(ctx context.Context, pairID string, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE pair_id = $1`
	args := []any{pairID}

	switch filter.Kind {
	case domain.FilterAll:
		// No predicate, just ordering.
	case domain.FilterDayBucket:
		query += ` AND rate_date >= $2 AND rate_date < $3`
		args = append(args, filter.From, filter.To)
	case domain.FilterExactTimestamp:
		query += ` AND rate_date = $2`
		args = append(args, filter.From)
	case domain.FilterRange:
		query += ` AND rate_date BETWEEN $2 AND $3`
		args = append(args, filter.From, filter.To)
	case domain.FilterLatest:
		query += ` ORDER BY rate_date DESC LIMIT 1`
		return r.queryRates(ctx, query, args)
	}

	query += ` ORDER BY rate_date DESC`
	return r.queryRates(ctx, query, args)
}

func (r *PgxExchangeRateRepository) queryRates(ctx context.Context, query string, args []any) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.ExchangeRateID, &rate.PairID, &rate.Rate, &rate.RateDate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchange rate rows: %w", err)
	}
	return rates, nil
}

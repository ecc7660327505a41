package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
)

// PgxCurrencyPairRepository implements ports.CurrencyPairRepository using pgxpool.
type PgxCurrencyPairRepository struct {
	BaseRepository
}

func NewPgxCurrencyPairRepository(db *pgxpool.Pool) *PgxCurrencyPairRepository {
	return &PgxCurrencyPairRepository{BaseRepository: BaseRepository{Pool: db}}
}

const pairColumns = `pair_id, from_currency_code, to_currency_code, observe, created_at, updated_at`

// SavePair inserts a new pair. The (from, to) tuple is unique; a concurrent
// duplicate insert surfaces as ErrDuplicate via the DB constraint.
func (r *PgxCurrencyPairRepository) SavePair(ctx context.Context, pair domain.CurrencyPair) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currency_pairs (`+pairColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pair.PairID, strings.ToUpper(pair.FromCurrencyCode), strings.ToUpper(pair.ToCurrencyCode),
		pair.Observe, pair.CreatedAt, pair.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency pair %s already exists", apperrors.ErrDuplicate, pair.Label())
		}
		return fmt.Errorf("failed to insert currency pair: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// FindPairByID retrieves a pair by its id.
func (r *PgxCurrencyPairRepository) FindPairByID(ctx context.Context, pairID string) (*domain.CurrencyPair, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+pairColumns+` FROM currency_pairs WHERE pair_id = $1`, pairID)

	pair, err := scanPair(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("currency pair with id '%s' not found", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query currency pair: %w", err)
	}
	return pair, nil
}

// FindPairByCodes retrieves the pair for the ordered (from, to) tuple.
func (r *PgxCurrencyPairRepository) FindPairByCodes(ctx context.Context, fromCode, toCode string) (*domain.CurrencyPair, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+pairColumns+` FROM currency_pairs WHERE from_currency_code = $1 AND to_currency_code = $2`,
		strings.ToUpper(fromCode), strings.ToUpper(toCode),
	)

	pair, err := scanPair(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("currency pair %s → %s not found", strings.ToUpper(fromCode), strings.ToUpper(toCode))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query currency pair: %w", err)
	}
	return pair, nil
}

// ListPairs returns all pairs, or only those involving filterCode on either
// side when it is non-empty.
func (r *PgxCurrencyPairRepository) ListPairs(ctx context.Context, filterCode string) ([]domain.CurrencyPair, error) {
	query := `SELECT ` + pairColumns + ` FROM currency_pairs`
	args := []any{}
	if filterCode != "" {
		query += ` WHERE from_currency_code = $1 OR to_currency_code = $1`
		args = append(args, strings.ToUpper(filterCode))
	}
	query += ` ORDER BY created_at`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency pairs: %w", err)
	}
	defer rows.Close()

	return collectPairs(rows)
}

// FindObservedPairs returns the pairs flagged for automatic refresh.
func (r *PgxCurrencyPairRepository) FindObservedPairs(ctx context.Context) ([]domain.CurrencyPair, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+pairColumns+` FROM currency_pairs WHERE observe = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observed pairs: %w", err)
	}
	defer rows.Close()

	return collectPairs(rows)
}

// SetObserve flips the observe flag for a pair.
func (r *PgxCurrencyPairRepository) SetObserve(ctx context.Context, pairID string, observe bool) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE currency_pairs SET observe = $1, updated_at = $2 WHERE pair_id = $3`,
		observe, time.Now(), pairID,
	)
	if err != nil {
		return fmt.Errorf("failed to update observe flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("currency pair with id '%s' not found", pairID)
	}
	return nil
}

func scanPair(row pgx.Row) (*domain.CurrencyPair, error) {
	var pair domain.CurrencyPair
	err := row.Scan(
		&pair.PairID, &pair.FromCurrencyCode, &pair.ToCurrencyCode,
		&pair.Observe, &pair.CreatedAt, &pair.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func collectPairs(rows pgx.Rows) ([]domain.CurrencyPair, error) {
	var pairs []domain.CurrencyPair
	for rows.Next() {
		pair, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency pair row: %w", err)
		}
		pairs = append(pairs, *pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currency pair rows: %w", err)
	}
	return pairs, nil
}

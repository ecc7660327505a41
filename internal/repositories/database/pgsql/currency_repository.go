package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/core/domain"
)

// PgxCurrencyRepository implements ports.CurrencyRepository using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

func NewPgxCurrencyRepository(db *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: db}}
}

const currencyColumns = `currency_code, name, symbol, symbol_native, decimal_digits, rounding, name_plural, currency_type, created_at, updated_at`

// UpsertCurrency inserts the currency or overwrites the display fields of an
// existing row. The code is the stable identity.
func (r *PgxCurrencyRepository) UpsertCurrency(ctx context.Context, currency domain.Currency) (bool, error) {
	code := strings.ToUpper(currency.CurrencyCode)

	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}

	var existing string
	err = tx.QueryRow(ctx,
		`SELECT currency_code FROM currencies WHERE currency_code = $1`, code,
	).Scan(&existing)

	created := false
	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `
			UPDATE currencies
			SET name = $1, symbol = $2, symbol_native = $3, decimal_digits = $4,
				rounding = $5, name_plural = $6, currency_type = $7, updated_at = $8
			WHERE currency_code = $9`,
			currency.Name, currency.Symbol, currency.SymbolNative, currency.DecimalDigits,
			currency.Rounding, currency.NamePlural, nullableString(currency.Type), currency.UpdatedAt, code,
		)
	case errors.Is(err, pgx.ErrNoRows):
		created = true
		_, err = tx.Exec(ctx, `
			INSERT INTO currencies (`+currencyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			code, currency.Name, currency.Symbol, currency.SymbolNative, currency.DecimalDigits,
			currency.Rounding, currency.NamePlural, nullableString(currency.Type),
			currency.CreatedAt, currency.UpdatedAt,
		)
	}

	if err != nil {
		_ = r.Rollback(ctx, tx)
		return false, fmt.Errorf("failed to upsert currency %s: %w", code, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return created, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+currencyColumns+` FROM currencies WHERE currency_code = $1`,
		strings.ToUpper(code),
	)

	currency, err := scanCurrency(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("currency '%s' not found", strings.ToUpper(code))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query currency: %w", err)
	}
	return currency, nil
}

// ListCurrencies returns all known currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+currencyColumns+` FROM currencies ORDER BY currency_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency row: %w", err)
		}
		currencies = append(currencies, *currency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currency rows: %w", err)
	}
	return currencies, nil
}

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var currency domain.Currency
	var currencyType *string
	err := row.Scan(
		&currency.CurrencyCode, &currency.Name, &currency.Symbol, &currency.SymbolNative,
		&currency.DecimalDigits, &currency.Rounding, &currency.NamePlural, &currencyType,
		&currency.CreatedAt, &currency.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if currencyType != nil {
		currency.Type = *currencyType
	}
	return &currency, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

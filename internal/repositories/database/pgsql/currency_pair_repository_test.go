package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "currency_pairs_from_currency_code_to_currency_code_key"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("failed to insert: %w", unique)))

	foreignKey := &pgconn.PgError{Code: "23503"}
	assert.False(t, isUniqueViolation(foreignKey))

	// Mentioning "unique" in the message is not a constraint violation.
	assert.False(t, isUniqueViolation(errors.New(`relation "unique_things" does not exist`)))
	assert.False(t, isUniqueViolation(nil))
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency holds the metadata for a supported currency as delivered by the
// rate provider. CurrencyCode is the stable identity; display fields are
// overwritten on re-sync.
type Currency struct {
	CurrencyCode  string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name          string          `json:"name"`         // e.g., "US Dollar"
	Symbol        string          `json:"symbol"`       // e.g., "$"
	SymbolNative  string          `json:"symbolNative"`
	DecimalDigits int             `json:"decimalDigits"`
	Rounding      decimal.Decimal `json:"rounding"`
	NamePlural    string          `json:"namePlural"`
	Type          string          `json:"type,omitempty"` // e.g., "fiat", "crypto"; may be empty
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

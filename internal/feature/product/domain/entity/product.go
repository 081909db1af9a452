// Package entity defines the catalog's domain types.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Qty is the authoritative stock level.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

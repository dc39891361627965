package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario.
// Size es nil salvo para categorías Ropa y Zapato.
type Product struct {
	ID         int64
	Code       string // único
	Quantity   int64
	Cost       decimal.Decimal
	CategoryID int64
	Size       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta; asocia productos sin ser dueña de ellos.
type Sale struct {
	ID         int64
	Code       string // único
	ProductIDs []int64
	TotalCost  decimal.Decimal
	Date       time.Time // solo fecha (00:00 UTC)
	Time       time.Time
	CreatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Layaway (apartado) reserva productos para un usuario que paga a plazos.
// El usuario referenciado no puede eliminarse mientras exista el apartado.
type Layaway struct {
	ID         int64
	UserID     int64
	Code       string // único
	ProductIDs []int64
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

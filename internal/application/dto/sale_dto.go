package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest entrada para crear o reemplazar una venta.
type SaleRequest struct {
	Products  []int64         `json:"productos"`
	Code      json.RawMessage `json:"codigo" swaggertype:"string"`
	TotalCost json.RawMessage `json:"costo_total" swaggertype:"number"`
	Date      json.RawMessage `json:"fecha" swaggertype:"string" example:"2024-05-01"`
	Time      json.RawMessage `json:"hora" swaggertype:"string" example:"2024-05-01T10:30:00Z"`
}

// SaleResponse salida de una venta. Fecha en AAAA-MM-DD.
type SaleResponse struct {
	ID        int64           `json:"id"`
	Products  []int64         `json:"productos"`
	Code      string          `json:"codigo"`
	TotalCost decimal.Decimal `json:"costo_total"`
	Date      string          `json:"fecha"`
	Time      time.Time       `json:"hora"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

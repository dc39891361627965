package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LayawayRequest entrada para crear o reemplazar un apartado.
type LayawayRequest struct {
	User      json.RawMessage `json:"usuario" swaggertype:"integer"`
	Code      json.RawMessage `json:"codigo" swaggertype:"string"`
	Products  []int64         `json:"productos"`
	TotalCost json.RawMessage `json:"costo_total" swaggertype:"number"`
}

// LayawayResponse salida de un apartado.
type LayawayResponse struct {
	ID        int64           `json:"id"`
	User      int64           `json:"usuario"`
	Code      string          `json:"codigo"`
	Products  []int64         `json:"productos"`
	TotalCost decimal.Decimal `json:"costo_total"`
}

// LayawayListResponse lista paginada de apartados.
type LayawayListResponse struct {
	Items []LayawayResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

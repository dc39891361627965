package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
// Los campos escalares llegan crudos para distinguir, por ejemplo, un costo numérico de uno en texto.
type ProductRequest struct {
	Code     json.RawMessage `json:"codigo" swaggertype:"string"`
	Quantity json.RawMessage `json:"cantidad" swaggertype:"integer"`
	Cost     json.RawMessage `json:"costo" swaggertype:"number"`
	Category json.RawMessage `json:"categoria" swaggertype:"integer"`
	Size     json.RawMessage `json:"talla" swaggertype:"string"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64           `json:"id"`
	Code     string          `json:"codigo"`
	Quantity int64           `json:"cantidad"`
	Cost     decimal.Decimal `json:"costo"`
	Category int64           `json:"categoria"`
	Size     *string         `json:"talla"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

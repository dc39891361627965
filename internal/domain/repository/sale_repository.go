package repository

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y su relación con productos.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetByCode(ctx context.Context, code string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, f Filter) ([]*entity.Sale, error)
	Delete(ctx context.Context, id int64) error
}

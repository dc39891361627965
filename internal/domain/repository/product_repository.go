package repository

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f Filter) ([]*entity.Product, error)
	// ExistingIDs devuelve el subconjunto de ids que existen.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

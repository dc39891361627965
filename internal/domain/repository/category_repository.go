package repository

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get devuelven (nil, nil) si el registro no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, f Filter) ([]*entity.Category, error)
	// Delete elimina la categoría y en cascada sus productos.
	Delete(ctx context.Context, id int64) error
}

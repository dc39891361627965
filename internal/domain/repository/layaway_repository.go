package repository

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// LayawayRepository define el puerto de persistencia para apartados.
type LayawayRepository interface {
	Create(ctx context.Context, layaway *entity.Layaway) error
	GetByID(ctx context.Context, id int64) (*entity.Layaway, error)
	GetByCode(ctx context.Context, code string) (*entity.Layaway, error)
	Update(ctx context.Context, layaway *entity.Layaway) error
	List(ctx context.Context, f Filter) ([]*entity.Layaway, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

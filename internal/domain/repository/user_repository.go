package repository

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f Filter) ([]*entity.User, error)
	CountByGroup(ctx context.Context, g entity.Group) (int, error)
	// Delete falla con domain.ErrConflict si el usuario tiene apartados.
	Delete(ctx context.Context, id int64) error
}

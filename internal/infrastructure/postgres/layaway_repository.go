package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

var _ repository.LayawayRepository = (*LayawayRepo)(nil)

var layawayColumns = columnMap{
	"codigo":  "code",
	"usuario": "user_id",
}

const layawaySelect = `
	SELECT l.id, l.user_id, l.code, l.total_cost, l.created_at, l.updated_at,
		ARRAY(SELECT lp.product_id FROM layaway_products lp WHERE lp.layaway_id = l.id ORDER BY lp.position)
	FROM layaways l`

// LayawayRepo implementación del puerto LayawayRepository sobre PostgreSQL.
type LayawayRepo struct {
	q Querier
}

// NewLayawayRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLayawayRepository(q Querier) *LayawayRepo {
	return &LayawayRepo{q: q}
}

// Create persiste el apartado y su relación con productos.
func (r *LayawayRepo) Create(ctx context.Context, l *entity.Layaway) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			INSERT INTO layaways (user_id, code, total_cost, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := q.QueryRow(ctx, query, l.UserID, l.Code, l.TotalCost, l.CreatedAt, l.UpdatedAt).Scan(&l.ID); err != nil {
			return layawayWriteErr("insert", err)
		}
		return replaceLinks(ctx, q, "layaway_products", "layaway_id", l.ID, l.ProductIDs)
	})
}

// GetByID obtiene un apartado por ID.
func (r *LayawayRepo) GetByID(ctx context.Context, id int64) (*entity.Layaway, error) {
	return r.getOne(ctx, layawaySelect+` WHERE l.id = $1`, id)
}

// GetByCode obtiene un apartado por código.
func (r *LayawayRepo) GetByCode(ctx context.Context, code string) (*entity.Layaway, error) {
	return r.getOne(ctx, layawaySelect+` WHERE l.code = $1`, code)
}

func (r *LayawayRepo) getOne(ctx context.Context, query string, arg any) (*entity.Layaway, error) {
	l, err := scanLayaway(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get layaway: %w", err)
	}
	return l, nil
}

// Update reemplaza el apartado y su lista de productos.
func (r *LayawayRepo) Update(ctx context.Context, l *entity.Layaway) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `UPDATE layaways SET user_id = $2, code = $3, total_cost = $4, updated_at = $5 WHERE id = $1`
		cmd, err := q.Exec(ctx, query, l.ID, l.UserID, l.Code, l.TotalCost, l.UpdatedAt)
		if err != nil {
			return layawayWriteErr("update", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceLinks(ctx, q, "layaway_products", "layaway_id", l.ID, l.ProductIDs)
	})
}

// List lista apartados con filtros y paginación.
func (r *LayawayRepo) List(ctx context.Context, f repository.Filter) ([]*entity.Layaway, error) {
	query, args, err := listQuery(layawaySelect, layawayColumns, f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list layaways: %w", err)
	}
	defer rows.Close()
	var list []*entity.Layaway
	for rows.Next() {
		l, err := scanLayaway(rows)
		if err != nil {
			return nil, fmt.Errorf("scan layaway: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// CountByUser cuenta los apartados de un usuario.
func (r *LayawayRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM layaways WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count layaways: %w", err)
	}
	return n, nil
}

// Delete elimina el apartado; layaway_products cae en cascada.
func (r *LayawayRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM layaways WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete layaway: %w", err)
	}
	return nil
}

func layawayWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	}
	return fmt.Errorf("%s layaway: %w", op, err)
}

func scanLayaway(row pgx.Row) (*entity.Layaway, error) {
	var l entity.Layaway
	if err := row.Scan(&l.ID, &l.UserID, &l.Code, &l.TotalCost, &l.CreatedAt, &l.UpdatedAt, &l.ProductIDs); err != nil {
		return nil, err
	}
	return &l, nil
}

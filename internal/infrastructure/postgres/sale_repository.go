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

var _ repository.SaleRepository = (*SaleRepo)(nil)

var saleColumns = columnMap{
	"codigo": "code",
	"fecha":  "sale_date",
}

const saleSelect = `
	SELECT s.id, s.code, s.total_cost, s.sale_date, s.sale_time, s.created_at,
		ARRAY(SELECT sp.product_id FROM sale_products sp WHERE sp.sale_id = s.id ORDER BY sp.position)
	FROM sales s`

// SaleRepo implementación del puerto SaleRepository; la venta y sus productos se escriben en una transacción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y su relación con productos.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			INSERT INTO sales (code, total_cost, sale_date, sale_time, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := q.QueryRow(ctx, query, s.Code, s.TotalCost, s.Date, s.Time, s.CreatedAt).Scan(&s.ID); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert sale: %w", err)
		}
		return replaceLinks(ctx, q, "sale_products", "sale_id", s.ID, s.ProductIDs)
	})
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, saleSelect+` WHERE s.id = $1`, id)
}

// GetByCode obtiene una venta por código.
func (r *SaleRepo) GetByCode(ctx context.Context, code string) (*entity.Sale, error) {
	return r.getOne(ctx, saleSelect+` WHERE s.code = $1`, code)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update reemplaza la venta y su lista de productos.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `UPDATE sales SET code = $2, total_cost = $3, sale_date = $4, sale_time = $5 WHERE id = $1`
		cmd, err := q.Exec(ctx, query, s.ID, s.Code, s.TotalCost, s.Date, s.Time)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("update sale: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceLinks(ctx, q, "sale_products", "sale_id", s.ID, s.ProductIDs)
	})
}

// List lista ventas con filtros y paginación.
func (r *SaleRepo) List(ctx context.Context, f repository.Filter) ([]*entity.Sale, error) {
	query, args, err := listQuery(saleSelect, saleColumns, f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina la venta; sale_products cae en cascada.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Code, &s.TotalCost, &s.Date, &s.Time, &s.CreatedAt, &s.ProductIDs); err != nil {
		return nil, err
	}
	return &s, nil
}

// replaceLinks reescribe la tabla intermedia conservando el orden de productIDs.
func replaceLinks(ctx context.Context, q Querier, table, ownerCol string, ownerID int64, productIDs []int64) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerCol), ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	insert := fmt.Sprintf(`INSERT INTO %s (%s, product_id, position) VALUES ($1, $2, $3)`, table, ownerCol)
	for i, pid := range productIDs {
		if _, err := q.Exec(ctx, insert, ownerID, pid, i); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("link %s: %w", table, err)
		}
	}
	return nil
}

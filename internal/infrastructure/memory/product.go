package memory

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[p.CategoryID]; !ok {
		return domain.ErrConflict
	}
	if r.codeTaken(p.Code, 0) {
		return domain.ErrDuplicate
	}
	p.ID = r.s.nextID()
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.codeTaken(p.Code, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.Filter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		items = append(items, cloneProduct(p))
	}
	return selectPage(items, func(p *entity.Product) int64 { return p.ID }, productField, f), nil
}

func (r *ProductRepo) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.s.products[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteProduct(id)
	return nil
}

func (r *ProductRepo) codeTaken(code string, self int64) bool {
	for _, p := range r.s.products {
		if p.Code == code && p.ID != self {
			return true
		}
	}
	return false
}

// deleteProduct se llama con mu tomado. Las relaciones con ventas y apartados se pierden
// como en la tabla intermedia con ON DELETE CASCADE.
func (s *Store) deleteProduct(id int64) {
	delete(s.products, id)
	for _, sale := range s.sales {
		sale.ProductIDs = removeID(sale.ProductIDs, id)
	}
	for _, l := range s.layaways {
		l.ProductIDs = removeID(l.ProductIDs, id)
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.Size != nil {
		size := *p.Size
		cp.Size = &size
	}
	return &cp
}

func productField(p *entity.Product, key string) (any, bool) {
	switch key {
	case "codigo":
		return p.Code, true
	case "cantidad":
		return p.Quantity, true
	case "costo":
		return p.Cost, true
	case "categoria":
		return p.CategoryID, true
	case "talla":
		if p.Size == nil {
			return nil, true
		}
		return *p.Size, true
	}
	return nil, false
}

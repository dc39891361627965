package memory

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.codeTaken(sale.Code, 0) {
		return domain.ErrDuplicate
	}
	sale.ID = r.s.nextID()
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

func (r *SaleRepo) GetByCode(_ context.Context, code string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sale := range r.s.sales {
		if sale.Code == code {
			return cloneSale(sale), nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.codeTaken(sale.Code, sale.ID) {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) List(_ context.Context, f repository.Filter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*entity.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		items = append(items, cloneSale(sale))
	}
	return selectPage(items, func(s *entity.Sale) int64 { return s.ID }, saleField, f), nil
}

func (r *SaleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sales, id)
	return nil
}

func (r *SaleRepo) codeTaken(code string, self int64) bool {
	for _, sale := range r.s.sales {
		if sale.Code == code && sale.ID != self {
			return true
		}
	}
	return false
}

func cloneSale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.ProductIDs = cloneIDs(s.ProductIDs)
	return &cp
}

func saleField(s *entity.Sale, key string) (any, bool) {
	switch key {
	case "codigo":
		return s.Code, true
	case "fecha":
		return s.Date, true
	}
	return nil, false
}

package memory

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

var _ repository.LayawayRepository = (*LayawayRepo)(nil)

// LayawayRepo apartados en memoria.
type LayawayRepo struct{ s *Store }

func (r *LayawayRepo) Create(_ context.Context, l *entity.Layaway) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[l.UserID]; !ok {
		return domain.ErrConflict
	}
	if r.codeTaken(l.Code, 0) {
		return domain.ErrDuplicate
	}
	l.ID = r.s.nextID()
	r.s.layaways[l.ID] = cloneLayaway(l)
	return nil
}

func (r *LayawayRepo) GetByID(_ context.Context, id int64) (*entity.Layaway, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.layaways[id]
	if !ok {
		return nil, nil
	}
	return cloneLayaway(l), nil
}

func (r *LayawayRepo) GetByCode(_ context.Context, code string) (*entity.Layaway, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.layaways {
		if l.Code == code {
			return cloneLayaway(l), nil
		}
	}
	return nil, nil
}

func (r *LayawayRepo) Update(_ context.Context, l *entity.Layaway) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.layaways[l.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.users[l.UserID]; !ok {
		return domain.ErrConflict
	}
	if r.codeTaken(l.Code, l.ID) {
		return domain.ErrDuplicate
	}
	r.s.layaways[l.ID] = cloneLayaway(l)
	return nil
}

func (r *LayawayRepo) List(_ context.Context, f repository.Filter) ([]*entity.Layaway, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*entity.Layaway, 0, len(r.s.layaways))
	for _, l := range r.s.layaways {
		items = append(items, cloneLayaway(l))
	}
	return selectPage(items, func(l *entity.Layaway) int64 { return l.ID }, layawayField, f), nil
}

func (r *LayawayRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.layawaysOf(userID), nil
}

func (r *LayawayRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.layaways, id)
	return nil
}

func (r *LayawayRepo) codeTaken(code string, self int64) bool {
	for _, l := range r.s.layaways {
		if l.Code == code && l.ID != self {
			return true
		}
	}
	return false
}

// layawaysOf se llama con mu tomado.
func (s *Store) layawaysOf(userID int64) int {
	n := 0
	for _, l := range s.layaways {
		if l.UserID == userID {
			n++
		}
	}
	return n
}

func cloneLayaway(l *entity.Layaway) *entity.Layaway {
	cp := *l
	cp.ProductIDs = cloneIDs(l.ProductIDs)
	return &cp
}

func layawayField(l *entity.Layaway, key string) (any, bool) {
	switch key {
	case "codigo":
		return l.Code, true
	case "usuario":
		return l.UserID, true
	}
	return nil, false
}

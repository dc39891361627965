package memory

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.UserTxRunner   = (*Store)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if field := r.taken(u, 0); field != "" {
		return &domain.DuplicateError{Field: field}
	}
	u.ID = r.s.nextID()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if field := r.taken(u, u.ID); field != "" {
		return &domain.DuplicateError{Field: field}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) List(_ context.Context, f repository.Filter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		items = append(items, &cp)
	}
	return selectPage(items, func(u *entity.User) int64 { return u.ID }, userField, f), nil
}

func (r *UserRepo) CountByGroup(_ context.Context, g entity.Group) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.users {
		if u.Group == g {
			n++
		}
	}
	return n, nil
}

// Delete falla con domain.ErrConflict si el usuario tiene apartados.
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.layawaysOf(id) > 0 {
		return domain.ErrConflict
	}
	delete(r.s.users, id)
	return nil
}

// RunUsers serializa las transacciones de usuarios; fn ve un repositorio normal.
// No hay rollback: fn solo escribe como último paso.
func (s *Store) RunUsers(_ context.Context, fn func(users repository.UserRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Users())
}

func (r *UserRepo) find(pred func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// taken aplica los mismos índices únicos que la tabla users: username, email (si no está vacío)
// y un único SuperUsuario. Devuelve el campo en conflicto o "".
func (r *UserRepo) taken(u *entity.User, self int64) string {
	for _, other := range r.s.users {
		if other.ID == self {
			continue
		}
		switch {
		case other.Username == u.Username:
			return "username"
		case u.Email != "" && other.Email == u.Email:
			return "email"
		case u.Group == entity.GroupSuperUser && other.Group == entity.GroupSuperUser:
			return "group"
		}
	}
	return ""
}

func userField(u *entity.User, key string) (any, bool) {
	switch key {
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "group":
		return u.Group, true
	}
	return nil, false
}

// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE=memory y en los tests de casos de uso y handlers.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

// Store guarda todas las entidades y mantiene la integridad referencial que en
// PostgreSQL dan las foreign keys (cascada de categorías, usuarios protegidos).
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	seq        int64
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	sales      map[int64]*entity.Sale
	layaways   map[int64]*entity.Layaway
	users      map[int64]*entity.User
}

// NewStore crea un store con las categorías base Ropa y Zapato.
func NewStore() *Store {
	s := &Store{
		categories: make(map[int64]*entity.Category),
		products:   make(map[int64]*entity.Product),
		sales:      make(map[int64]*entity.Sale),
		layaways:   make(map[int64]*entity.Layaway),
		users:      make(map[int64]*entity.User),
	}
	for _, name := range []string{entity.CategoryClothing, entity.CategoryShoes} {
		s.seq++
		s.categories[s.seq] = &entity.Category{ID: s.seq, Name: name}
	}
	return s
}

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Sales repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// Layaways repositorio de apartados.
func (s *Store) Layaways() *LayawayRepo { return &LayawayRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// nextID se llama con mu tomado.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// matches compara el valor de un campo con el filtro según su tipo.
func matches(got, want any) bool {
	switch w := want.(type) {
	case decimal.Decimal:
		g, ok := got.(decimal.Decimal)
		return ok && g.Equal(w)
	case time.Time:
		g, ok := got.(time.Time)
		return ok && g.Equal(w)
	default:
		return got == want
	}
}

// selectPage filtra, ordena por id y pagina. field devuelve ok=false si el campo no existe.
func selectPage[T any](items []T, id func(T) int64, field func(T, string) (any, bool), f repository.Filter) []T {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
	out := make([]T, 0, len(items))
	for _, it := range items {
		keep := true
		for key, want := range f.Equals {
			got, ok := field(it, key)
			if !ok || !matches(got, want) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return out[:0]
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func cloneIDs(ids []int64) []int64 {
	return append([]int64(nil), ids...)
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

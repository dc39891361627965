package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, code string, categoryID int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Code: code, Quantity: 1, Cost: decimal.NewFromInt(10), CategoryID: categoryID}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestNewStore_CategoriasBase(t *testing.T) {
	s := NewStore()
	ropa, err := s.Categories().GetByName(context.Background(), entity.CategoryClothing)
	require.NoError(t, err)
	require.NotNil(t, ropa)
	zapato, err := s.Categories().GetByName(context.Background(), entity.CategoryShoes)
	require.NoError(t, err)
	require.NotNil(t, zapato)
}

func TestCategoryDelete_CascadaProductos(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	cat := &entity.Category{Name: "Bolsa"}
	require.NoError(t, s.Categories().Create(ctx, cat))
	p := seedProduct(t, s, "B-1", cat.ID)
	sale := &entity.Sale{Code: "V-1", ProductIDs: []int64{p.ID}}
	require.NoError(t, s.Sales().Create(ctx, sale))

	require.NoError(t, s.Categories().Delete(ctx, cat.ID))

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	stored, err := s.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProductIDs)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "A-1", 1)
	err := s.Products().Create(context.Background(), &entity.Product{Code: "A-1", CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductList_FiltrosYPaginacion(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, code := range []string{"A", "B", "C"} {
		seedProduct(t, s, code, 1)
	}
	seedProduct(t, s, "D", 2)

	list, err := s.Products().List(ctx, repository.Filter{Equals: map[string]any{"categoria": int64(1)}})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = s.Products().List(ctx, repository.Filter{Equals: map[string]any{"costo": decimal.RequireFromString("10.00")}})
	require.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = s.Products().List(ctx, repository.Filter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Code)
	assert.Equal(t, "C", list[1].Code)

	list, err = s.Products().List(ctx, repository.Filter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserDelete_ProtegidoPorApartados(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := &entity.User{Username: "ana", Group: entity.GroupClient}
	require.NoError(t, s.Users().Create(ctx, u))
	require.NoError(t, s.Layaways().Create(ctx, &entity.Layaway{UserID: u.ID, Code: "AP-1"}))

	assert.ErrorIs(t, s.Users().Delete(ctx, u.ID), domain.ErrConflict)

	n, err := s.Layaways().CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserCreate_EmailVacioNoColisiona(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{Username: "a"}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{Username: "b"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{Username: "a"}), domain.ErrDuplicate)
}

func TestUserCreate_DuplicadoIndicaCampo(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	require.NoError(t, users.Create(ctx, &entity.User{Username: "a", Email: "a@x.com", Group: entity.GroupSuperUser}))

	cases := map[string]*entity.User{
		"username": {Username: "a", Email: "otro@x.com", Group: entity.GroupClient},
		"email":    {Username: "b", Email: "a@x.com", Group: entity.GroupClient},
		"group":    {Username: "c", Email: "c@x.com", Group: entity.GroupSuperUser},
	}
	for field, u := range cases {
		err := users.Create(ctx, u)
		var dup *domain.DuplicateError
		require.ErrorAs(t, err, &dup, field)
		assert.Equal(t, field, dup.Field)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	}
}

func TestRunUsers(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.RunUsers(ctx, func(users repository.UserRepository) error {
		return users.Create(ctx, &entity.User{Username: "root", Group: entity.GroupSuperUser})
	})
	require.NoError(t, err)

	n, err := s.Users().CountByGroup(ctx, entity.GroupSuperUser)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

func TestListQuery_SinFiltros(t *testing.T) {
	sql, args, err := listQuery("SELECT id FROM products", productColumns, repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM products ORDER BY id", sql)
	assert.Empty(t, args)
}

func TestListQuery_FiltrosOrdenadosYPaginacion(t *testing.T) {
	cost := decimal.NewFromInt(10)
	f := repository.Filter{
		Equals: map[string]any{"costo": cost, "codigo": "A-1"},
		Limit:  20,
		Offset: 40,
	}
	sql, args, err := listQuery("SELECT id FROM products", productColumns, f)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM products WHERE code = $1 AND cost = $2 ORDER BY id LIMIT $3 OFFSET $4", sql)
	assert.Equal(t, []any{"A-1", cost, 20, 40}, args)
}

func TestListQuery_NilEsIsNull(t *testing.T) {
	sql, args, err := listQuery("SELECT id FROM products", productColumns,
		repository.Filter{Equals: map[string]any{"talla": nil, "categoria": int64(3)}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM products WHERE category_id = $1 AND size IS NULL ORDER BY id", sql)
	assert.Equal(t, []any{int64(3)}, args)
}

func TestListQuery_ClaveDesconocida(t *testing.T) {
	_, _, err := listQuery("SELECT id FROM products", productColumns,
		repository.Filter{Equals: map[string]any{"password": "x"}})
	assert.Error(t, err)
}

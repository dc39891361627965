package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Costo
// ──────────────────────────────────────────────────────────────────────────────

func TestCost(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		err  error
	}{
		{"entero positivo", `10`, nil},
		{"decimal positivo", `0.01`, nil},
		{"dos decimales con cero final", `10.50`, nil},
		{"máximo de NUMERIC(12,2)", `9999999999.99`, nil},
		{"tres decimales", `0.001`, validation.ErrCostPrecision},
		{"tres decimales sobre entero", `10.005`, validation.ErrCostPrecision},
		{"once dígitos enteros", `10000000000`, validation.ErrCostTooLarge},
		{"exponente fuera de rango", `1e12`, validation.ErrCostTooLarge},
		{"cero", `0`, validation.ErrCostNotPositive},
		{"negativo", `-1`, validation.ErrCostNotPositive},
		{"string numérico", `"10"`, validation.ErrCostIsString},
		{"booleano", `true`, validation.ErrCostNotNumeric},
		{"objeto", `{"v":1}`, validation.ErrCostNotNumeric},
		{"null", `null`, validation.ErrRequired},
		{"ausente", ``, validation.ErrRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validation.Cost(json.RawMessage(tc.raw))
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCost_DevuelveDecimal(t *testing.T) {
	d, err := validation.Cost(json.RawMessage(`12.50`))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestReference(t *testing.T) {
	id, err := validation.Reference(json.RawMessage(`7`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, raw := range []string{`"7"`, `0`, `-2`, `1.5`, `true`, `[1]`} {
		_, err := validation.Reference(json.RawMessage(raw))
		assert.ErrorIs(t, err, validation.ErrReference, "referencia %s", raw)
	}
	for _, raw := range []string{``, `null`} {
		_, err := validation.Reference(json.RawMessage(raw))
		assert.ErrorIs(t, err, validation.ErrRequired, "referencia %q", raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Talla
// ──────────────────────────────────────────────────────────────────────────────

func TestSize_Ropa(t *testing.T) {
	for _, s := range validation.ClothingSizes {
		got, err := validation.Size(entity.CategoryClothing, strPtr(s))
		require.NoError(t, err, "talla %s debe ser válida para ropa", s)
		assert.Equal(t, s, *got)
	}
	for _, s := range []string{"XXL", "m", "", "5"} {
		_, err := validation.Size(entity.CategoryClothing, strPtr(s))
		assert.ErrorIs(t, err, validation.ErrClothingSize, "talla %q no debe ser válida para ropa", s)
	}
	_, err := validation.Size(entity.CategoryClothing, nil)
	assert.ErrorIs(t, err, validation.ErrClothingSize, "ropa sin talla es inválida")
}

func TestSize_Zapato(t *testing.T) {
	valid := validation.ShoeSizes()
	require.Len(t, valid, 17)
	assert.Equal(t, "5", valid[0])
	assert.Equal(t, "5.5", valid[1])
	assert.Equal(t, "13", valid[16])

	for _, s := range valid {
		_, err := validation.Size(entity.CategoryShoes, strPtr(s))
		assert.NoError(t, err, "talla %s debe ser válida para zapatos", s)
	}
	for _, s := range []string{"4.5", "13.5", "-5", "7.25", "M", ""} {
		_, err := validation.Size(entity.CategoryShoes, strPtr(s))
		assert.ErrorIs(t, err, validation.ErrShoeSize, "talla %q no debe ser válida para zapatos", s)
	}
	_, err := validation.Size(entity.CategoryShoes, nil)
	assert.ErrorIs(t, err, validation.ErrShoeSize)
}

func TestSize_Zapato_FormaCanonica(t *testing.T) {
	got, err := validation.Size(entity.CategoryShoes, strPtr("7.50"))
	require.NoError(t, err)
	assert.Equal(t, "7.5", *got)

	got, err = validation.Size(entity.CategoryShoes, strPtr("8.0"))
	require.NoError(t, err)
	assert.Equal(t, "8", *got)
}

func TestSize_OtraCategoria(t *testing.T) {
	got, err := validation.Size("Accesorios", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = validation.Size("Accesorios", strPtr("M"))
	assert.ErrorIs(t, err, validation.ErrSizeNotApplicable)
}

func TestSameSizeRule(t *testing.T) {
	assert.True(t, validation.SameSizeRule("Accesorios", "Bolsos"))
	assert.True(t, validation.SameSizeRule(entity.CategoryClothing, entity.CategoryClothing))
	assert.False(t, validation.SameSizeRule(entity.CategoryClothing, "Ropa de niño"))
	assert.False(t, validation.SameSizeRule("Calzado", entity.CategoryShoes))
	assert.False(t, validation.SameSizeRule(entity.CategoryClothing, entity.CategoryShoes))
}

func TestRawSize(t *testing.T) {
	s, err := validation.RawSize(json.RawMessage(`7.5`))
	require.NoError(t, err)
	assert.Equal(t, "7.5", *s)

	s, err = validation.RawSize(json.RawMessage(`"M"`))
	require.NoError(t, err)
	assert.Equal(t, "M", *s)

	s, err = validation.RawSize(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = validation.RawSize(json.RawMessage(`["M"]`))
	assert.ErrorIs(t, err, validation.ErrSizeType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidad y código
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantity(t *testing.T) {
	n, err := validation.Quantity(json.RawMessage(`3`))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = validation.Quantity(json.RawMessage(`0`))
	assert.NoError(t, err)

	for _, raw := range []string{`-1`, `1.5`, `"3"`} {
		_, err = validation.Quantity(json.RawMessage(raw))
		assert.ErrorIs(t, err, validation.ErrQuantity, raw)
	}
}

func TestCode(t *testing.T) {
	c, err := validation.Code(json.RawMessage(`"1a"`))
	require.NoError(t, err)
	assert.Equal(t, "1a", c)

	_, err = validation.Code(json.RawMessage(`1`))
	assert.ErrorIs(t, err, validation.ErrCodeType, "un código numérico es inválido")

	_, err = validation.Code(json.RawMessage(`""`))
	assert.ErrorIs(t, err, validation.ErrRequired)
}

// ──────────────────────────────────────────────────────────────────────────────
// Run: acumulación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_AcumulaTodosLosCampos(t *testing.T) {
	verr := validation.Run(
		validation.Rule{Field: "costo", Check: func() error { _, err := validation.Cost(json.RawMessage(`-1`)); return err }},
		validation.Rule{Field: "talla", Check: func() error { _, err := validation.Size(entity.CategoryClothing, nil); return err }},
		validation.Rule{Field: "codigo", Check: func() error { return nil }},
	)
	require.False(t, verr.Empty())
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Fields, "costo")
	assert.Contains(t, verr.Fields, "talla")
}

func TestRun_SaltaReglasDeCampoYaFallido(t *testing.T) {
	calls := 0
	verr := validation.Run(
		validation.Rule{Field: "codigo", Check: func() error { return validation.ErrRequired }},
		validation.Rule{Field: "codigo", Check: func() error { calls++; return nil }},
	)
	assert.Equal(t, 0, calls)
	assert.Len(t, verr.Fields["codigo"], 1)
}

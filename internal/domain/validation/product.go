package validation

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

var (
	ErrRequired          = errors.New("este campo es requerido")
	ErrCostIsString      = errors.New("el costo introducido es un string")
	ErrCostNotNumeric    = errors.New("el costo debe ser un número")
	ErrCostNotPositive   = errors.New("el costo no puede ser negativo ni cero")
	ErrClothingSize      = errors.New("la talla introducida no es valida para la ropa")
	ErrShoeSize          = errors.New("la talla introducida no es valida para zapatos")
	ErrSizeNotApplicable = errors.New("no aplica el campo talla para este producto")
	ErrSizeType          = errors.New("la talla debe ser un texto o un número")
	ErrQuantity          = errors.New("la cantidad debe ser un entero mayor o igual a cero")
	ErrCodeType          = errors.New("el código debe ser un texto")
	ErrCodeLength        = errors.New("el código no puede superar 100 caracteres")
	ErrReference         = errors.New("debe ser el id numérico de un registro existente")
	ErrCostPrecision     = errors.New("el costo no puede tener más de 2 decimales")
	ErrCostTooLarge      = errors.New("el costo no puede tener más de 10 dígitos enteros")
)

// ClothingSizes dominio de tallas para la categoría Ropa.
var ClothingSizes = []string{"XXS", "XS", "S", "M", "L", "XL"}

var (
	maxCost     = decimal.New(1, 10)
	minShoeSize = decimal.NewFromInt(5)
	maxShoeSize = decimal.NewFromInt(13)
	two         = decimal.NewFromInt(2)
)

// ShoeSizes dominio de tallas para la categoría Zapato: 5 a 13 en pasos de 0.5.
func ShoeSizes() []string {
	out := make([]string, 0, 17)
	half := decimal.NewFromFloat(0.5)
	for s := minShoeSize; s.LessThanOrEqual(maxShoeSize); s = s.Add(half) {
		out = append(out, s.String())
	}
	return out
}

// Cost valida el costo tal como llegó en el JSON: debe ser un número (no un string) mayor que cero
// que quepa en NUMERIC(12,2).
func Cost(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, ErrRequired
	}
	r := gjson.ParseBytes(raw)
	switch r.Type {
	case gjson.Number:
	case gjson.String:
		return decimal.Zero, ErrCostIsString
	case gjson.Null:
		return decimal.Zero, ErrRequired
	default:
		return decimal.Zero, ErrCostNotNumeric
	}
	d, err := decimal.NewFromString(r.Raw)
	if err != nil {
		return decimal.Zero, ErrCostNotNumeric
	}
	if err := CostFits(d); err != nil {
		return decimal.Zero, err
	}
	return d, PositiveCost(d)
}

// CostFits falla si d no cabe en una columna NUMERIC(12,2): como mucho 2 decimales y 10 dígitos enteros.
func CostFits(d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return ErrCostPrecision
	}
	if d.Abs().GreaterThanOrEqual(maxCost) {
		return ErrCostTooLarge
	}
	return nil
}

// PositiveCost falla si d <= 0.
func PositiveCost(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrCostNotPositive
	}
	return nil
}

// RawSize convierte la talla del JSON (texto, número o null) a *string.
func RawSize(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	r := gjson.ParseBytes(raw)
	switch r.Type {
	case gjson.Null:
		return nil, nil
	case gjson.String:
		s := r.Str
		return &s, nil
	case gjson.Number:
		s := r.Raw
		return &s, nil
	}
	return nil, ErrSizeType
}

// SameSizeRule indica si dos nombres de categoría aplican la misma regla de tallas.
func SameSizeRule(a, b string) bool {
	return sizeRule(a) == sizeRule(b)
}

func sizeRule(categoryName string) string {
	switch categoryName {
	case entity.CategoryClothing, entity.CategoryShoes:
		return categoryName
	}
	return ""
}

// Size verifica la talla según la categoría y devuelve su forma canónica.
//   - Ropa: talla ∈ {XXS, XS, S, M, L, XL}.
//   - Zapato: talla ∈ {5, 5.5, ..., 13}.
//   - otra categoría: la talla debe ser nula.
func Size(categoryName string, size *string) (*string, error) {
	switch categoryName {
	case entity.CategoryClothing:
		if size == nil {
			return nil, ErrClothingSize
		}
		for _, s := range ClothingSizes {
			if *size == s {
				return size, nil
			}
		}
		return nil, ErrClothingSize
	case entity.CategoryShoes:
		if size == nil {
			return nil, ErrShoeSize
		}
		d, err := decimal.NewFromString(*size)
		if err != nil {
			return nil, ErrShoeSize
		}
		if d.LessThan(minShoeSize) || d.GreaterThan(maxShoeSize) || !d.Mul(two).IsInteger() {
			return nil, ErrShoeSize
		}
		canonical := d.String()
		return &canonical, nil
	default:
		if size != nil {
			return nil, ErrSizeNotApplicable
		}
		return nil, nil
	}
}

// Quantity valida que la cantidad sea un entero no negativo.
func Quantity(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, ErrRequired
	}
	r := gjson.ParseBytes(raw)
	if r.Type != gjson.Number {
		return 0, ErrQuantity
	}
	n, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil || n < 0 {
		return 0, ErrQuantity
	}
	return n, nil
}

// Reference valida el id de un registro relacionado (categoría, usuario): un entero JSON positivo.
// Un id en texto es un error del campo y no de toda la petición.
func Reference(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, ErrRequired
	}
	r := gjson.ParseBytes(raw)
	switch r.Type {
	case gjson.Null:
		return 0, ErrRequired
	case gjson.Number:
	default:
		return 0, ErrReference
	}
	id, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrReference
	}
	return id, nil
}

// Code valida un código único de producto, venta o apartado: texto no vacío de hasta 100 caracteres.
func Code(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrRequired
	}
	r := gjson.ParseBytes(raw)
	if r.Type == gjson.Null {
		return "", ErrRequired
	}
	if r.Type != gjson.String {
		return "", ErrCodeType
	}
	if r.Str == "" {
		return "", ErrRequired
	}
	if len(r.Str) > 100 {
		return "", ErrCodeLength
	}
	return r.Str, nil
}

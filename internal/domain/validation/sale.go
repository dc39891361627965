package validation

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Formatos aceptados para fecha y hora de una venta.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = time.RFC3339
)

var (
	ErrDate            = errors.New("formato de fecha inválido, use AAAA-MM-DD")
	ErrTimestamp       = errors.New("formato de hora inválido, use RFC 3339")
	ErrProductsMissing = errors.New("debe incluir al menos un producto")
	ErrProductUnknown  = errors.New("uno o más productos no existen")
	ErrNegativeTotal   = errors.New("el costo total no puede ser negativo")

	errNotString = errors.New("no es texto")
)

// Date valida la fecha de una venta (texto AAAA-MM-DD).
func Date(raw json.RawMessage) (time.Time, error) {
	s, err := stringValue(raw)
	if errors.Is(err, errNotString) {
		return time.Time{}, ErrDate
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrDate
	}
	return t, nil
}

// Timestamp valida la hora de una venta (texto RFC 3339).
func Timestamp(raw json.RawMessage) (time.Time, error) {
	s, err := stringValue(raw)
	if errors.Is(err, errNotString) {
		return time.Time{}, ErrTimestamp
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, ErrTimestamp
	}
	return t, nil
}

// LayawayTotal valida el costo total de un apartado: numérico y no negativo.
func LayawayTotal(raw json.RawMessage) (decimal.Decimal, error) {
	d, err := Cost(raw)
	switch {
	case err == nil:
		return d, nil
	case errors.Is(err, ErrCostNotPositive):
		if d.IsNegative() {
			return decimal.Zero, ErrNegativeTotal
		}
		return d, nil
	default:
		return decimal.Zero, err
	}
}

// ProductRefs valida que la lista de productos no esté vacía y que todos existan.
// exists es el subconjunto de ids que el almacenamiento reconoce.
func ProductRefs(ids []int64, exists []int64) error {
	if len(ids) == 0 {
		return ErrProductsMissing
	}
	known := make(map[int64]struct{}, len(exists))
	for _, id := range exists {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return ErrProductUnknown
		}
	}
	return nil
}

func stringValue(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrRequired
	}
	r := gjson.ParseBytes(raw)
	switch r.Type {
	case gjson.Null:
		return "", ErrRequired
	case gjson.String:
		if r.Str == "" {
			return "", ErrRequired
		}
		return r.Str, nil
	}
	return "", errNotString
}

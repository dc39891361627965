package usecase

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

// fieldParser convierte el valor de un filtro de la query a su tipo; ok=false si no es válido.
type fieldParser func(string) (any, bool)

// filterSpec es la lista permitida de campos filtrables de un recurso.
type filterSpec map[string]fieldParser

func asString(s string) (any, bool) { return s, true }

func asInt64(s string) (any, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func asDecimal(s string) (any, bool) {
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

func asGroup(s string) (any, bool) {
	g, err := entity.ParseGroup(s)
	return g, err == nil
}

func asDate(s string) (any, bool) {
	t, err := parseDate(s)
	return t, err == nil
}

var (
	productFilters = filterSpec{
		"codigo":    asString,
		"cantidad":  asInt64,
		"costo":     asDecimal,
		"categoria": asInt64,
		"talla":     asString,
	}
	categoryFilters = filterSpec{
		"nombre": asString,
	}
	saleFilters = filterSpec{
		"codigo": asString,
		"fecha":  asDate,
	}
	layawayFilters = filterSpec{
		"codigo":  asString,
		"usuario": asInt64,
	}
	userFilters = filterSpec{
		"username":   asString,
		"email":      asString,
		"first_name": asString,
		"last_name":  asString,
		"group":      asGroup,
	}
)

// buildFilter valida la búsqueda contra la lista permitida.
// ok=false significa que la búsqueda no puede coincidir con nada (campo fuera de la lista
// o valor mal formado): el caso de uso responde con una lista vacía, no con un error.
func buildFilter(spec filterSpec, in dto.SearchRequest) (repository.Filter, bool) {
	in.Page.DefaultPage()
	f := repository.Filter{
		Equals: make(map[string]any, len(in.Filters)),
		Limit:  in.Page.Limit,
		Offset: in.Page.Offset,
	}
	for key, raw := range in.Filters {
		parse, allowed := spec[key]
		if !allowed {
			return f, false
		}
		v, ok := parse(raw)
		if !ok {
			return f, false
		}
		f.Equals[key] = v
	}
	return f, true
}

func pageOf(f repository.Filter) dto.PageResponse {
	return dto.PageResponse{Limit: f.Limit, Offset: f.Offset}
}

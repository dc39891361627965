package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

// columnMap traduce las claves de filtro del dominio a columnas SQL.
type columnMap map[string]string

// whereClause construye "WHERE a = $n AND ..." con orden estable de claves.
// Un valor nil se traduce en IS NULL. Claves sin columna devuelven error.
func whereClause(cols columnMap, f repository.Filter, argStart int) (string, []any, error) {
	if len(f.Equals) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(f.Equals))
	for k := range f.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		col, ok := cols[k]
		if !ok {
			return "", nil, fmt.Errorf("filtro no soportado: %s", k)
		}
		v := f.Equals[k]
		if v == nil {
			conds = append(conds, col+" IS NULL")
			continue
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, argStart+len(args)-1))
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// pageClause añade LIMIT/OFFSET; Limit 0 no limita.
func pageClause(f repository.Filter, args []any) (string, []any) {
	var b strings.Builder
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

// listQuery compone SELECT base + filtros + orden + paginación.
func listQuery(base string, cols columnMap, f repository.Filter) (string, []any, error) {
	where, args, err := whereClause(cols, f, 1)
	if err != nil {
		return "", nil, err
	}
	page, args := pageClause(f, args)
	return base + where + " ORDER BY id" + page, args, nil
}

package repository

// Filter filtros de igualdad ya tipados (campo de la API → valor) más paginación.
// Los campos se validan contra la lista permitida antes de llegar al repositorio.
// Limit 0 significa sin límite.
type Filter struct {
	Equals map[string]any
	Limit  int
	Offset int
}

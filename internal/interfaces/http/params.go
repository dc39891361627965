package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain"
)

// pathID lee el parámetro :id. Un id no numérico no puede existir: se responde 404.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// searchRequest separa limit/offset del resto de la query, que son filtros de igualdad.
func searchRequest(c *fiber.Ctx) dto.SearchRequest {
	in := dto.SearchRequest{Filters: map[string]string{}}
	for key, value := range c.Queries() {
		switch key {
		case "limit":
			in.Page.Limit, _ = strconv.Atoi(value)
		case "offset":
			in.Page.Offset, _ = strconv.Atoi(value)
		default:
			in.Filters[key] = value
		}
	}
	return in
}

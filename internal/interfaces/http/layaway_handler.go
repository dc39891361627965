package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/application/usecase"
)

// LayawayHandler maneja los apartados.
type LayawayHandler struct {
	uc *usecase.LayawayUseCase
}

// NewLayawayHandler construye el handler.
func NewLayawayHandler(uc *usecase.LayawayUseCase) *LayawayHandler {
	return &LayawayHandler{uc: uc}
}

// Create godoc
// @Summary      Crear apartado
// @Tags         apartados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LayawayRequest  true  "usuario, codigo, productos, costo_total"
// @Success      201   {object}  dto.LayawayResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /apartados/crear [post]
func (h *LayawayHandler) Create(c *fiber.Ctx) error {
	var in dto.LayawayRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Search godoc
// @Summary      Listar apartados
// @Description  El personal ve todos; un cliente solo los suyos.
// @Tags         apartados
// @Security     Bearer
// @Produce      json
// @Param        codigo   query  string  false  "Código"
// @Param        usuario  query  int     false  "ID de usuario"
// @Success      200  {object}  dto.LayawayListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /apartados/ [get]
func (h *LayawayHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), GetActor(c), searchRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener apartado
// @Tags         apartados
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del apartado"
// @Success      200  {object}  dto.LayawayResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /apartados/{id}/ [get]
func (h *LayawayHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar apartado
// @Tags         apartados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del apartado"
// @Param        body  body  dto.LayawayRequest  true  "Apartado completo"
// @Success      200   {object}  dto.LayawayResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /apartados/{id}/ [put]
func (h *LayawayHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LayawayRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar apartado
// @Tags         apartados
// @Security     Bearer
// @Param        id   path  int  true  "ID del apartado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /apartados/{id}/ [delete]
func (h *LayawayHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

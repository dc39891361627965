package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/pkg/jwt"
)

// LocalActor clave en c.Locals del actor de la petición.
const LocalActor = "actor"

// AuthMiddleware resuelve el actor de la petición a partir del Bearer Token.
// Sin header el actor es anónimo y los permisos deciden; un token presente pero
// inválido o expirado corta con 401. El usuario del token se relee en cada petición:
// si fue eliminado o desactivado el token deja de servir, y el grupo es el guardado.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(LocalActor, permission.Anonymous())
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if _, err := entity.ParseGroup(claims.Group); err != nil || claims.UserID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_GROUP", Message: "el token no contiene un grupo válido"})
		}
		user, err := users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "el usuario del token no existe o está inactivo"})
		}
		c.Locals(LocalActor, permission.Actor{ID: user.ID, Group: user.Group, Authenticated: true})
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto; anónimo si el middleware no corrió.
func GetActor(c *fiber.Ctx) permission.Actor {
	if a, ok := c.Locals(LocalActor).(permission.Actor); ok {
		return a
	}
	return permission.Anonymous()
}

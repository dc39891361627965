package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/crucitafashion/crucita-api/pkg/logger"
)

const (
	// HeaderRequestID cabecera de correlación; se respeta si el cliente la envía.
	HeaderRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// RequestIDMiddleware asigna un id (uuid) a cada petición y lo devuelve en la respuesta.
// Si el cliente envía X-Request-ID se respeta.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     HeaderRequestID,
		Generator:  uuid.NewString,
		ContextKey: localRequestID,
	})
}

// RequestID id de la petición actual.
func RequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(localRequestID).(string)
	return s
}

// LoggingMiddleware registra una línea por petición con método, ruta, status y duración.
func LoggingMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		reqLog := log.Request(RequestID(c))
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return nil
	}
}

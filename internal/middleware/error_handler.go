package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"homeboard-backend/internal/pkg/response"
)

// ErrorHandler is the global error handler. Fiber-level errors (bad routes,
// oversized bodies) keep their status; anything else becomes the generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		if e.Code == fiber.StatusNotFound {
			return response.NotFound(c, e.Message)
		}
		if e.Code < fiber.StatusInternalServerError {
			return response.BadRequest(c, e.Message)
		}
	}
	log.Error().Str("path", c.Path()).Err(err).Msg("Unhandled request error")
	return response.ServerError(c)
}

package response

import (
	"github.com/gofiber/fiber/v2"
)

// MsgBody is the board's 4xx JSON shape.
type MsgBody struct {
	Msg string `json:"msg"`
}

// BadRequest sends 400 with a message body.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(MsgBody{Msg: message})
}

// NotFound sends 404 with a message body.
func NotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(MsgBody{Msg: message})
}

// ServerError sends the generic 500. Plain text, matching the original API;
// store and gateway failures are never detailed to the caller.
func ServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
}

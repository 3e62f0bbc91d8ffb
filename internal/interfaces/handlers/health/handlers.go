package health

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handlers struct {
	DB *gorm.DB
}

// Banner GET / — plain liveness text.
func (h *Handlers) Banner(c *fiber.Ctx) error {
	return c.SendString("HomeBoard API is running...")
}

// JSON GET /health/json — service status plus a DB ping.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	db := "not configured"
	if h.DB != nil {
		db = "connected"
		sqlDB, err := h.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			db = "error"
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "db": db})
}

package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/aiabusehotline/hotline-core/internal/config"
	"github.com/aiabusehotline/hotline-core/internal/dto"
)

// AdminRequired guards the operator API with the shared X-Admin-Token
// header. An unconfigured token fails closed: every request is
// rejected until one is set.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presented := c.Get("X-Admin-Token")
		if cfg.AdminToken == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.AdminToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid admin token",
			})
		}
		return c.Next()
	}
}

package http

import "github.com/gofiber/fiber/v2"

func (m *Module) me(c *fiber.Ctx) error {
	a := currentAccount(c)
	if a == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error_code": "UNAUTHORIZED",
			"message":    "Not authorized, no token",
		})
	}
	return c.JSON(fiber.Map{"success": true, "user": AccountJSON(a)})
}

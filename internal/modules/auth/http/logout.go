package http

import "github.com/gofiber/fiber/v2"

// logout invalidates the credential client-side; there is no server-side
// revocation list.
func (m *Module) logout(c *fiber.Ctx) error {
	m.clearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/platform/security"
)

type resetPasswordReq struct {
	Password string `json:"password"`
}

func (m *Module) resetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	var req resetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	if len(req.Password) < 6 {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_PASSWORD", "Password must be at least 6 characters", nil)
	}

	// Invalid and expired share one message; the token is single-use because
	// UpdatePassword clears the reset fields.
	a, err := m.accounts.GetByResetToken(token)
	if err != nil || a == nil {
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "Invalid or expired reset token", nil)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	if err := m.accounts.UpdatePassword(a.ID, hash); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successful"})
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	"github.com/NitinS47/duk/internal/platform/security"
)

// RequireAuth validates the session credential (cookie first, Bearer header as
// a fallback) and attaches the account to the request context.
func RequireAuth(sessions *security.SessionManager, accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(sessionCookie)
		if tokenStr == "" {
			if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Not authorized, no token",
			})
		}

		id, err := sessions.Parse(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Not authorized, token failed",
			})
		}

		a, err := accounts.GetByID(id)
		if err != nil || a == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Not authorized, user not found",
			})
		}

		a.PasswordHash = ""
		c.Locals("account", a)
		c.Locals("user_id", a.ID)
		return c.Next()
	}
}

// currentAccount pulls the account the guard attached.
func currentAccount(c *fiber.Ctx) *domain.Account {
	a, _ := c.Locals("account").(*domain.Account)
	return a
}

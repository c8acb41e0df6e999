package http

import (
	"github.com/gofiber/fiber/v2"

	authhttp "github.com/NitinS47/duk/internal/modules/auth/http"
)

func (m *Module) recommended(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	accounts, err := m.accounts.ListRecommended(uid, 20)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to list recommended users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error_code": "SERVER_ERROR",
			"message":    "Internal server error",
		})
	}
	out := make([]fiber.Map, 0, len(accounts))
	for i := range accounts {
		out = append(out, authhttp.AccountJSON(&accounts[i]))
	}
	return c.JSON(fiber.Map{"users": out})
}

func (m *Module) friends(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	accounts, err := m.accounts.ListFriends(uid)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to list friends")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error_code": "SERVER_ERROR",
			"message":    "Internal server error",
		})
	}
	out := make([]fiber.Map, 0, len(accounts))
	for i := range accounts {
		out = append(out, authhttp.AccountJSON(&accounts[i]))
	}
	return c.JSON(fiber.Map{"friends": out})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NitinS47/duk/internal/platform/chat"
)

type Deps struct {
	Chat  chat.Provisioner
	Guard fiber.Handler
	Log   zerolog.Logger
}

// Module exposes token issuance for the external messaging provider; the chat
// client on the front end trades the session for a provider token here.
type Module struct {
	chat  chat.Provisioner
	guard fiber.Handler
	log   zerolog.Logger
}

func New(d Deps) *Module {
	return &Module{chat: d.Chat, guard: d.Guard, log: d.Log}
}

func (m *Module) Register(r fiber.Router) {
	r.Get("/chat/token", m.guard, m.token)
}

func (m *Module) token(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	tok, err := m.chat.Token(uid)
	if err != nil {
		m.log.Error().Err(err).Str("account_id", uid).Msg("failed to create chat token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error_code": "SERVER_ERROR",
			"message":    "Failed to create chat token",
		})
	}
	return c.JSON(fiber.Map{"token": tok})
}

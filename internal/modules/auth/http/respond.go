package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

const sessionCookie = "token"

// fail writes the stable error envelope. The diagnostic detail is attached
// outside production only.
func (m *Module) fail(c *fiber.Ctx, status int, code, msg string, err error) error {
	body := fiber.Map{"error_code": code, "message": msg}
	if err != nil {
		m.log.Warn().Err(err).Str("path", c.Path()).Str("error_code", code).Msg(msg)
		if !m.production {
			body["error"] = err.Error()
		}
	}
	return c.Status(status).JSON(body)
}

// AccountJSON is the account projection returned to clients; the credential
// hash and token fields never leave the server.
func AccountJSON(a *domain.Account) fiber.Map {
	return fiber.Map{
		"id":             a.ID,
		"email":          a.Email,
		"fullName":       a.FullName,
		"bio":            a.Bio,
		"profilePicture": a.AvatarURL,
		"interests":      a.Interests,
		"location":       a.Location,
		"isVerified":     a.IsVerified,
		"isOnboarded":    a.IsOnboarded,
		"createdAt":      a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (m *Module) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   m.production,
	})
}

func (m *Module) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   m.production,
	})
}

// finishSession issues the 7-day credential, sets the cookie and returns the
// account projection.
func (m *Module) finishSession(c *fiber.Ctx, a *domain.Account, msg string) error {
	tok, exp, err := m.sessions.Issue(a.ID)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	m.setSessionCookie(c, tok, exp)
	return c.JSON(fiber.Map{"success": true, "message": msg, "user": AccountJSON(a)})
}

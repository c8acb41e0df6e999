package http

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

func (m *Module) verifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "Invalid verification token", nil)
	}

	p, err := m.pending.GetByToken(token)
	switch {
	case err == nil:
		return m.promotePending(c, p)
	case errors.Is(err, domain.ErrTokenExpired):
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_EXPIRED", "Verification token has expired", nil)
	case errors.Is(err, domain.ErrNotFound):
		// fall through to the account-scoped token issued on login/resend
	default:
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	a, err := m.accounts.GetByVerificationToken(token)
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_EXPIRED", "Verification token has expired", nil)
	case err != nil:
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "Invalid verification token", nil)
	}
	if err := m.accounts.MarkVerified(a.ID); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	a.IsVerified = true
	// The account predates this request; a provisioning hiccup must not
	// destroy it, so the upsert is best effort here.
	if err := m.chat.UpsertProfile(c.UserContext(), a.ID, a.FullName, a.AvatarURL); err != nil {
		m.log.Warn().Err(err).Str("account_id", a.ID).Msg("chat profile upsert failed")
	}
	return m.finishSession(c, a, "Email verified successfully. You are now logged in.")
}

// promotePending is the terminal step of the verification state machine: it
// materializes the Account, provisions the chat profile, and only then
// consumes the pending record. On provisioning failure the Account is deleted
// and the pending record is kept so the same link can be retried within its
// TTL.
func (m *Module) promotePending(c *fiber.Ctx, p *domain.PendingRegistration) error {
	if exists, err := m.accounts.ExistsByEmail(p.Email); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	} else if exists {
		_ = m.pending.DeleteByEmail(p.Email)
		return m.fail(c, fiber.StatusBadRequest, "ALREADY_VERIFIED", "Email already verified", nil)
	}

	a, err := m.accounts.Create(domain.CreateAccountParams{
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		AvatarURL:    defaultAvatarURL(),
		IsVerified:   true,
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		// Lost a race with a concurrent verification of the same email.
		_ = m.pending.DeleteByEmail(p.Email)
		return m.fail(c, fiber.StatusBadRequest, "ALREADY_VERIFIED", "Email already verified", nil)
	}
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	if err := m.chat.UpsertProfile(c.UserContext(), a.ID, a.FullName, a.AvatarURL); err != nil {
		_ = m.accounts.Delete(a.ID)
		return m.fail(c, fiber.StatusInternalServerError, "PROVISIONING_FAILED",
			"Failed to create user profile. Please try again.", err)
	}

	if err := m.pending.DeleteByEmail(p.Email); err != nil {
		m.log.Error().Err(err).Str("email", p.Email).Msg("failed to consume pending registration")
	}
	return m.finishSession(c, a, "Email verified successfully. You are now logged in.")
}

func defaultAvatarURL() string {
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", rand.Intn(100))
}

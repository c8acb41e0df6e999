package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type onboardReq struct {
	FullName  string `json:"fullName"`
	Bio       string `json:"bio"`
	Interests string `json:"interests"`
	Location  string `json:"location"`
}

// onboard updates the allow-listed profile fields only; protected fields like
// the verified flag or credential hash are not reachable from the body.
func (m *Module) onboard(c *fiber.Ctx) error {
	a := currentAccount(c)
	if a == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error_code": "UNAUTHORIZED",
			"message":    "Not authorized, no token",
		})
	}

	var req onboardReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Interests = strings.TrimSpace(req.Interests)
	req.Location = strings.TrimSpace(req.Location)

	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Bio == "" {
		missing = append(missing, "bio")
	}
	if req.Interests == "" {
		missing = append(missing, "interests")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code":    "INVALID_FIELDS",
			"message":       "Please fill all fields",
			"missingFields": missing,
		})
	}

	updated, err := m.accounts.UpdateOnboarding(a.ID, domain.OnboardingParams{
		FullName:  req.FullName,
		Bio:       req.Bio,
		Interests: req.Interests,
		Location:  req.Location,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return m.fail(c, fiber.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	// Keep the chat profile in sync; a provider failure does not undo onboarding.
	if err := m.chat.UpsertProfile(c.UserContext(), updated.ID, updated.FullName, updated.AvatarURL); err != nil {
		m.log.Warn().Err(err).Str("account_id", updated.ID).Msg("chat profile upsert failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User onboarded successfully",
		"user":    AccountJSON(updated),
	})
}

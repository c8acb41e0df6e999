package http

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type verifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// verifyOTP is the out-of-band presentation of the same single token: the
// client supplies the email and the code it received, and the promotion path
// is identical to the link route.
func (m *Module) verifyOTP(c *fiber.Ctx) error {
	var req verifyOTPReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.OTP = strings.TrimSpace(req.OTP)
	if req.Email == "" || req.OTP == "" {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}

	p, err := m.pending.GetByEmail(req.Email)
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_EXPIRED", "Verification token has expired", nil)
	case err != nil:
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "Invalid verification code", nil)
	}
	if subtle.ConstantTimeCompare([]byte(p.Token), []byte(req.OTP)) != 1 {
		return m.fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "Invalid verification code", nil)
	}
	return m.promotePending(c, p)
}

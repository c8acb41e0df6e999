package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"
)

type signUpReq struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

var validate = validator.New()

func (m *Module) signUp(c *fiber.Ctx) error {
	var req signUpReq
	if err := c.BodyParser(&req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_FIELDS", "Please fill all fields", nil)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := validate.Struct(req); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err), nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return m.fail(c, fiber.StatusBadRequest, "INVALID_EMAIL", "Invalid email format", nil)
	}

	// Email must be free in both namespaces: accounts and live pendings.
	if exists, err := m.accounts.ExistsByEmail(req.Email); err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	} else if exists {
		return m.fail(c, fiber.StatusBadRequest, "EMAIL_TAKEN", "Email already exists", nil)
	}
	if _, err := m.pending.GetByEmail(req.Email); err == nil {
		return m.fail(c, fiber.StatusBadRequest, "EMAIL_TAKEN", "Email already exists", nil)
	}

	token, expiresAt, err := security.NewToken(signupTokenTTL)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	if err := m.pending.Create(domain.PendingRegistration{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Token:        token,
		ExpiresAt:    expiresAt,
	}); err != nil {
		// The unique constraint is what arbitrates a concurrent duplicate signup.
		if errors.Is(err, domain.ErrEmailTaken) {
			return m.fail(c, fiber.StatusBadRequest, "EMAIL_TAKEN", "Email already exists", nil)
		}
		return m.fail(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Internal server error", err)
	}

	if err := m.sender.Send(c.UserContext(), notify.VerificationEmail(m.frontendURL, req.Email, token)); err != nil {
		// Roll the pending record back so a retry is not blocked for 15 minutes.
		_ = m.pending.DeleteByEmail(req.Email)
		switch {
		case errors.Is(err, notify.ErrNotConfigured):
			return m.fail(c, fiber.StatusInternalServerError, "EMAIL_NOT_CONFIGURED",
				"Email service is not configured. Please contact support.", err)
		case errors.Is(err, notify.ErrAuth):
			return m.fail(c, fiber.StatusInternalServerError, "EMAIL_AUTH_FAILED",
				"Email authentication failed. Please check email configuration.", err)
		case errors.Is(err, notify.ErrConnect):
			return m.fail(c, fiber.StatusInternalServerError, "EMAIL_UNREACHABLE",
				"Could not connect to email server. Please try again later.", err)
		default:
			return m.fail(c, fiber.StatusInternalServerError, "EMAIL_SEND_FAILED",
				"Failed to send verification email. Please try again.", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Please check your email to verify your account.",
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch {
		case fe.Field() == "Password" && fe.Tag() == "min":
			return "Password must be at least 6 characters"
		case fe.Field() == "Email":
			return "Invalid email format"
		default:
			return "Please fill all fields"
		}
	}
	return "Please fill all fields"
}

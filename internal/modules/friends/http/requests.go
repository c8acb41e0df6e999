package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	authhttp "github.com/NitinS47/duk/internal/modules/auth/http"
)

func (m *Module) sendRequest(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	recipientID := c.Params("id")

	if recipientID == uid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "INVALID_RECIPIENT",
			"message":    "You can't send a friend request to yourself",
		})
	}
	recipient, err := m.accounts.GetByID(recipientID)
	if err != nil || recipient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error_code": "NOT_FOUND",
			"message":    "Recipient not found",
		})
	}
	if friends, err := m.accounts.AreFriends(uid, recipientID); err != nil {
		return m.serverError(c, err)
	} else if friends {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "ALREADY_FRIENDS",
			"message":    "You are already friends with this user",
		})
	}
	if exists, err := m.requests.ExistsBetween(uid, recipientID); err != nil {
		return m.serverError(c, err)
	} else if exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "REQUEST_EXISTS",
			"message":    "A friend request already exists between you and this user",
		})
	}

	fr, err := m.requests.Create(uid, recipientID)
	if err != nil {
		return m.serverError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"request": friendRequestJSON(fr),
	})
}

func (m *Module) acceptRequest(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	requestID := c.Params("id")

	fr, err := m.requests.GetByID(requestID)
	if errors.Is(err, domain.ErrNotFound) || fr == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error_code": "NOT_FOUND",
			"message":    "Friend request not found",
		})
	}
	if err != nil {
		return m.serverError(c, err)
	}
	if fr.RecipientID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error_code": "FORBIDDEN",
			"message":    "You are not authorized to accept this request",
		})
	}

	if err := m.requests.Accept(fr.ID); err != nil {
		return m.serverError(c, err)
	}
	if err := m.accounts.AddFriendship(fr.SenderID, fr.RecipientID); err != nil {
		return m.serverError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Friend request accepted"})
}

func (m *Module) listRequests(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	incoming, err := m.requests.ListIncoming(uid)
	if err != nil {
		return m.serverError(c, err)
	}
	accepted, err := m.requests.ListAcceptedBySender(uid)
	if err != nil {
		return m.serverError(c, err)
	}

	incomingOut := make([]fiber.Map, 0, len(incoming))
	for i := range incoming {
		entry := friendRequestJSON(&incoming[i])
		if sender, err := m.accounts.GetByID(incoming[i].SenderID); err == nil {
			entry["sender"] = authhttp.AccountJSON(sender)
		}
		incomingOut = append(incomingOut, entry)
	}
	acceptedOut := make([]fiber.Map, 0, len(accepted))
	for i := range accepted {
		entry := friendRequestJSON(&accepted[i])
		if recipient, err := m.accounts.GetByID(accepted[i].RecipientID); err == nil {
			entry["recipient"] = authhttp.AccountJSON(recipient)
		}
		acceptedOut = append(acceptedOut, entry)
	}

	return c.JSON(fiber.Map{
		"incomingReqs": incomingOut,
		"acceptedReqs": acceptedOut,
	})
}

func (m *Module) serverError(c *fiber.Ctx, err error) error {
	m.log.Error().Err(err).Str("path", c.Path()).Msg("friends request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    "Internal server error",
	})
}

func friendRequestJSON(fr *domain.FriendRequest) fiber.Map {
	return fiber.Map{
		"id":        fr.ID,
		"sender":    fr.SenderID,
		"recipient": fr.RecipientID,
		"status":    fr.Status,
		"createdAt": fr.CreatedAt.UTC().Format(time.RFC3339),
	}
}

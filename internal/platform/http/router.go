package http

import "github.com/gofiber/fiber/v2"

// Module registers its own routes on the shared /api prefix.
type Module interface {
	Register(r fiber.Router)
}

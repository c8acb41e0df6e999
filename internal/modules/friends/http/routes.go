package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type Deps struct {
	Accounts domain.AccountRepo
	Requests domain.FriendRequestRepo
	Guard    fiber.Handler
	Log      zerolog.Logger
}

// Module serves the friends surface: recommendations, the friend list, and
// friend requests. Every route requires a session.
type Module struct {
	accounts domain.AccountRepo
	requests domain.FriendRequestRepo
	guard    fiber.Handler
	log      zerolog.Logger
}

func New(d Deps) *Module {
	return &Module{accounts: d.Accounts, requests: d.Requests, guard: d.Guard, log: d.Log}
}

func (m *Module) Register(r fiber.Router) {
	users := r.Group("/users", m.guard)

	users.Get("/", m.recommended)
	users.Get("/friends", m.friends)
	users.Get("/friend-requests", m.listRequests)
	users.Post("/friend-request/:id", m.sendRequest)
	users.Put("/friend-request/:id/accept", m.acceptRequest)
}

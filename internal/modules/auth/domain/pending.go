package domain

import "time"

// PendingRegistration holds a not-yet-confirmed signup, keyed by email. At
// most one exists per email; a record past ExpiresAt is dead and must never be
// promoted.
type PendingRegistration struct {
	Email        string
	FullName     string
	PasswordHash string
	Token        string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

type PendingRepo interface {
	Create(p PendingRegistration) error // ErrEmailTaken on duplicate

	// Lookups purge an expired record and report ErrTokenExpired for it, so
	// callers can distinguish "expired" from "never existed" (ErrNotFound).
	GetByToken(token string) (*PendingRegistration, error)
	GetByEmail(email string) (*PendingRegistration, error)

	DeleteByEmail(email string) error
	DeleteExpired() (int, error)
}

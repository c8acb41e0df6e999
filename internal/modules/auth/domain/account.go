package domain

import "time"

// Account is the durable, confirmed user record. Accounts are created only by
// successful verification and never hard-deleted by the auth flows (the
// rollback inside verification being the one exception).
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string

	Bio       string
	AvatarURL string
	Interests string
	Location  string

	IsVerified  bool
	IsOnboarded bool

	// Set when an unverified account asks for a (re)send; distinct from the
	// pending-registration token, which lives before the account exists.
	VerificationToken     *string
	VerificationExpiresAt *time.Time

	ResetToken     *string
	ResetExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateAccountParams struct {
	Email        string
	FullName     string
	PasswordHash string
	AvatarURL    string
	IsVerified   bool
}

// OnboardingParams is the explicit allow-list of profile fields onboarding may
// touch. Nothing else from a request body reaches the store.
type OnboardingParams struct {
	FullName  string
	Bio       string
	Interests string
	Location  string
}

type AccountRepo interface {
	Create(p CreateAccountParams) (*Account, error) // ErrEmailTaken on duplicate
	GetByID(id string) (*Account, error)
	GetByEmail(email string) (*Account, error)
	ExistsByEmail(email string) (bool, error)
	Delete(id string) error

	SetVerificationToken(id, token string, expiresAt time.Time) error
	GetByVerificationToken(token string) (*Account, error) // ErrTokenExpired past expiry
	MarkVerified(id string) error                          // clears the token fields

	SetResetToken(id, token string, expiresAt time.Time) error
	GetByResetToken(token string) (*Account, error) // ErrTokenExpired past expiry
	UpdatePassword(id, newHash string) error        // clears the reset fields

	UpdateOnboarding(id string, p OnboardingParams) (*Account, error)

	ListRecommended(forID string, limit int) ([]Account, error)
	ListFriends(id string) ([]Account, error)
	AddFriendship(a, b string) error // symmetric, rejects self-reference
	AreFriends(a, b string) (bool, error)
}

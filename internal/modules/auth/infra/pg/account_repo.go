package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

const accountColumns = `id, email, full_name, password_hash, bio, avatar_url, interests, location,
	is_verified, is_onboarded, verification_token, verification_expires_at,
	reset_token, reset_expires_at, created_at, updated_at`

type AccountRepo struct{ db *pgxpool.Pool }

func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.Bio, &a.AvatarURL,
		&a.Interests, &a.Location, &a.IsVerified, &a.IsOnboarded,
		&a.VerificationToken, &a.VerificationExpiresAt,
		&a.ResetToken, &a.ResetExpiresAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AccountRepo) Create(p domain.CreateAccountParams) (*domain.Account, error) {
	ctx := context.Background()
	q := `
INSERT INTO accounts (email, full_name, password_hash, avatar_url, is_verified)
VALUES (LOWER($1), $2, $3, $4, $5)
RETURNING ` + accountColumns
	row := r.db.QueryRow(ctx, q, p.Email, p.FullName, p.PasswordHash, p.AvatarURL, p.IsVerified)
	return scanAccount(row)
}

func (r *AccountRepo) GetByID(id string) (*domain.Account, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
	return scanAccount(row)
}

func (r *AccountRepo) GetByEmail(email string) (*domain.Account, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE email=LOWER($1)`, strings.TrimSpace(email))
	return scanAccount(row)
}

func (r *AccountRepo) ExistsByEmail(email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email=LOWER($1))`, email).Scan(&ok)
	return ok, err
}

func (r *AccountRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM accounts WHERE id=$1`, id)
	return err
}

func (r *AccountRepo) SetVerificationToken(id, token string, expiresAt time.Time) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE accounts SET verification_token=$2, verification_expires_at=$3, updated_at=now() WHERE id=$1`,
		id, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) GetByVerificationToken(token string) (*domain.Account, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE verification_token=$1`, token)
	a, err := scanAccount(row)
	if err != nil {
		return nil, err
	}
	if a.VerificationExpiresAt != nil && time.Now().After(*a.VerificationExpiresAt) {
		return nil, domain.ErrTokenExpired
	}
	return a, nil
}

func (r *AccountRepo) MarkVerified(id string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE accounts SET is_verified=true, verification_token=NULL, verification_expires_at=NULL, updated_at=now() WHERE id=$1`, id)
	return err
}

func (r *AccountRepo) SetResetToken(id, token string, expiresAt time.Time) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE accounts SET reset_token=$2, reset_expires_at=$3, updated_at=now() WHERE id=$1`,
		id, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) GetByResetToken(token string) (*domain.Account, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE reset_token=$1`, token)
	a, err := scanAccount(row)
	if err != nil {
		return nil, err
	}
	if a.ResetExpiresAt != nil && time.Now().After(*a.ResetExpiresAt) {
		return nil, domain.ErrTokenExpired
	}
	return a, nil
}

func (r *AccountRepo) UpdatePassword(id, newHash string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE accounts SET password_hash=$2, reset_token=NULL, reset_expires_at=NULL, updated_at=now() WHERE id=$1`,
		id, newHash)
	return err
}

func (r *AccountRepo) UpdateOnboarding(id string, p domain.OnboardingParams) (*domain.Account, error) {
	q := `
UPDATE accounts SET full_name=$2, bio=$3, interests=$4, location=$5, is_onboarded=true, updated_at=now()
WHERE id=$1
RETURNING ` + accountColumns
	row := r.db.QueryRow(context.Background(), q, id, p.FullName, p.Bio, p.Interests, p.Location)
	return scanAccount(row)
}

func (r *AccountRepo) ListRecommended(forID string, limit int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + accountColumns + `
FROM accounts a
WHERE a.id <> $1
  AND a.is_onboarded
  AND NOT EXISTS (SELECT 1 FROM friendships f WHERE f.account_id=$1 AND f.friend_id=a.id)
ORDER BY a.created_at
LIMIT $2`
	rows, err := r.db.Query(context.Background(), q, forID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AccountRepo) ListFriends(id string) ([]domain.Account, error) {
	q := `
SELECT ` + accountColumns + `
FROM accounts a
JOIN friendships f ON f.friend_id = a.id
WHERE f.account_id = $1
ORDER BY a.full_name`
	rows, err := r.db.Query(context.Background(), q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// AddFriendship inserts both directions in one transaction so the relation
// stays symmetric.
func (r *AccountRepo) AddFriendship(a, b string) error {
	if a == b {
		return domain.ErrNotFound
	}
	ctx := context.Background()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO friendships (account_id, friend_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(ctx, q, a, b); err != nil {
		return translate(err)
	}
	if _, err := tx.Exec(ctx, q, b, a); err != nil {
		return translate(err)
	}
	return tx.Commit(ctx)
}

func (r *AccountRepo) AreFriends(a, b string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM friendships WHERE account_id=$1 AND friend_id=$2)`, a, b).Scan(&ok)
	return ok, err
}

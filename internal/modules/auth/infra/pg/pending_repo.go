package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type PendingRepo struct{ db *pgxpool.Pool }

func NewPendingRepo(db *pgxpool.Pool) *PendingRepo { return &PendingRepo{db: db} }

func scanPending(row interface{ Scan(dest ...any) error }) (*domain.PendingRegistration, error) {
	var p domain.PendingRegistration
	if err := row.Scan(&p.Email, &p.FullName, &p.PasswordHash, &p.Token, &p.ExpiresAt, &p.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PendingRepo) Create(p domain.PendingRegistration) error {
	ctx := context.Background()
	// Reclaim a dead row first so an expired signup does not block a retry;
	// the primary key still rejects a concurrent live duplicate.
	_, _ = r.db.Exec(ctx,
		`DELETE FROM pending_registrations WHERE email=LOWER($1) AND expires_at < now()`, p.Email)
	_, err := r.db.Exec(ctx, `
INSERT INTO pending_registrations (email, full_name, password_hash, token, expires_at)
VALUES (LOWER($1), $2, $3, $4, $5)`,
		p.Email, p.FullName, p.PasswordHash, p.Token, p.ExpiresAt)
	return translate(err)
}

func (r *PendingRepo) GetByToken(token string) (*domain.PendingRegistration, error) {
	row := r.db.QueryRow(context.Background(), `
SELECT email, full_name, password_hash, token, expires_at, created_at
FROM pending_registrations WHERE token=$1`, token)
	p, err := scanPending(row)
	if err != nil {
		return nil, err
	}
	if p.Expired(time.Now()) {
		_ = r.DeleteByEmail(p.Email)
		return nil, domain.ErrTokenExpired
	}
	return p, nil
}

func (r *PendingRepo) GetByEmail(email string) (*domain.PendingRegistration, error) {
	row := r.db.QueryRow(context.Background(), `
SELECT email, full_name, password_hash, token, expires_at, created_at
FROM pending_registrations WHERE email=LOWER($1)`, email)
	p, err := scanPending(row)
	if err != nil {
		return nil, err
	}
	if p.Expired(time.Now()) {
		_ = r.DeleteByEmail(p.Email)
		return nil, domain.ErrTokenExpired
	}
	return p, nil
}

func (r *PendingRepo) DeleteByEmail(email string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM pending_registrations WHERE email=LOWER($1)`, email)
	return err
}

// DeleteExpired is the reclamation sweep; cmd/api runs it periodically.
func (r *PendingRepo) DeleteExpired() (int, error) {
	tag, err := r.db.Exec(context.Background(),
		`DELETE FROM pending_registrations WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

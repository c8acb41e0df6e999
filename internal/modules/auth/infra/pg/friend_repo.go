package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type FriendRequestRepo struct{ db *pgxpool.Pool }

func NewFriendRequestRepo(db *pgxpool.Pool) *FriendRequestRepo {
	return &FriendRequestRepo{db: db}
}

func scanFriendRequest(row interface{ Scan(dest ...any) error }) (*domain.FriendRequest, error) {
	var fr domain.FriendRequest
	if err := row.Scan(&fr.ID, &fr.SenderID, &fr.RecipientID, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &fr, nil
}

func (r *FriendRequestRepo) Create(senderID, recipientID string) (*domain.FriendRequest, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO friend_requests (sender_id, recipient_id)
VALUES ($1, $2)
RETURNING id, sender_id, recipient_id, status, created_at, updated_at`,
		senderID, recipientID)
	return scanFriendRequest(row)
}

func (r *FriendRequestRepo) GetByID(id string) (*domain.FriendRequest, error) {
	row := r.db.QueryRow(context.Background(), `
SELECT id, sender_id, recipient_id, status, created_at, updated_at
FROM friend_requests WHERE id=$1`, id)
	return scanFriendRequest(row)
}

func (r *FriendRequestRepo) Accept(id string) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE friend_requests SET status='accepted', updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FriendRequestRepo) ExistsBetween(a, b string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(context.Background(), `
SELECT EXISTS(
  SELECT 1 FROM friend_requests
  WHERE (sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)
)`, a, b).Scan(&ok)
	return ok, err
}

func (r *FriendRequestRepo) ListIncoming(recipientID string) ([]domain.FriendRequest, error) {
	return r.list(`SELECT id, sender_id, recipient_id, status, created_at, updated_at
FROM friend_requests WHERE recipient_id=$1 AND status='pending' ORDER BY created_at`, recipientID)
}

func (r *FriendRequestRepo) ListAcceptedBySender(senderID string) ([]domain.FriendRequest, error) {
	return r.list(`SELECT id, sender_id, recipient_id, status, created_at, updated_at
FROM friend_requests WHERE sender_id=$1 AND status='accepted' ORDER BY updated_at`, senderID)
}

func (r *FriendRequestRepo) list(q string, arg any) ([]domain.FriendRequest, error) {
	rows, err := r.db.Query(context.Background(), q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.FriendRequest
	for rows.Next() {
		fr, err := scanFriendRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fr)
	}
	return out, rows.Err()
}

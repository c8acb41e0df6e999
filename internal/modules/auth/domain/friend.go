package domain

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

type FriendRequest struct {
	ID          string
	SenderID    string
	RecipientID string
	Status      FriendRequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FriendRequestRepo interface {
	Create(senderID, recipientID string) (*FriendRequest, error)
	GetByID(id string) (*FriendRequest, error)
	Accept(id string) error
	// ExistsBetween reports any request in either direction, regardless of status.
	ExistsBetween(a, b string) (bool, error)
	ListIncoming(recipientID string) ([]FriendRequest, error)
	ListAcceptedBySender(senderID string) ([]FriendRequest, error)
}

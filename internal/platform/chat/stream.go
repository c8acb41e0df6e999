package chat

import (
	"context"
	"time"

	stream "github.com/GetStream/stream-chat-go/v5"
)

// Provisioner keeps a remote messaging profile in sync for an account and
// hands out provider tokens for the chat client.
type Provisioner interface {
	UpsertProfile(ctx context.Context, id, name, image string) error
	Token(id string) (string, error)
}

// StreamClient provisions profiles on Stream.
type StreamClient struct {
	client *stream.Client
}

func NewStreamClient(apiKey, apiSecret string) (*StreamClient, error) {
	c, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &StreamClient{client: c}, nil
}

func (s *StreamClient) UpsertProfile(ctx context.Context, id, name, image string) error {
	_, err := s.client.UpsertUser(ctx, &stream.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	return err
}

func (s *StreamClient) Token(id string) (string, error) {
	// No expiry: the chat client refreshes through this endpoint as needed.
	return s.client.CreateToken(id, time.Time{})
}

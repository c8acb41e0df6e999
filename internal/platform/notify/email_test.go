package notify

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"smtp auth rejected", &textproto.Error{Code: 535, Msg: "authentication failed"}, ErrAuth},
		{"smtp auth disabled", &textproto.Error{Code: 530, Msg: "must issue STARTTLS"}, ErrAuth},
		{"dial failure", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, ErrConnect},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(test.in), test.want)
		})
	}

	generic := errors.New("550 mailbox unavailable")
	got := classify(generic)
	assert.NotErrorIs(t, got, ErrAuth)
	assert.NotErrorIs(t, got, ErrConnect)
}

func TestMailer_Unconfigured(t *testing.T) {
	m := NewMailer("", 587, "", "", "no-reply@example.com")
	err := m.Send(context.Background(), Message{To: "a@x.com", Subject: "hi", HTML: "<p>hi</p>"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTemplates(t *testing.T) {
	msg := VerificationEmail("https://app.example.com", "a@x.com", "tok123")
	assert.Equal(t, "a@x.com", msg.To)
	assert.Contains(t, msg.HTML, "https://app.example.com/verify-email/tok123")

	msg = ResetEmail("https://app.example.com", "a@x.com", "tok456")
	assert.Contains(t, msg.HTML, "https://app.example.com/reset-password/tok456")
}

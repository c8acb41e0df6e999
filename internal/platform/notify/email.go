package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"

	"gopkg.in/gomail.v2"
)

// Delivery failures the flows react to. Anything else coming out of Send is a
// generic delivery error.
var (
	ErrNotConfigured = errors.New("mailer_not_configured")
	ErrAuth          = errors.New("mailer_auth_failed")
	ErrConnect       = errors.New("mailer_connect_failed")
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender is the one capability the flows need from the mail collaborator.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer sends HTML mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	m := &Mailer{from: from}
	if host == "" || user == "" || pass == "" {
		return m // left unconfigured, Send reports it
	}
	m.dialer = gomail.NewDialer(host, port, user, pass)
	return m
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps transport-level errors to the taxonomy the signup flow
// reports: authentication, connectivity, generic.
func classify(err error) error {
	var proto *textproto.Error
	if errors.As(err, &proto) {
		switch proto.Code {
		case 530, 534, 535:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
	}
	var netErr net.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return err
}

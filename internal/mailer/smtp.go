package mailer

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/jonathan/legal-digest/internal/config"
	"github.com/jonathan/legal-digest/internal/types"
)

// DefaultDialTimeout bounds connecting to the SMTP server
const DefaultDialTimeout = 30 * time.Second

// SMTPSender sends mail through an SMTP relay. When credentials are set the
// connection must be upgraded with STARTTLS before PLAIN authentication.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a sender from configuration. The sender address
// defaults to the username.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, &types.ConfigurationError{Field: "smtp.host", Message: "SMTP host is required"}
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	if from == "" {
		return nil, &types.ConfigurationError{Field: "smtp.from", Message: "a sender address (smtp.from or smtp.username) is required"}
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
	}, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithTimeout(DefaultDialTimeout)}
	if s.port > 0 {
		opts = append(opts, mail.WithPort(s.port))
	}
	if s.username == "" {
		return append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return append(opts,
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
	)
}

// Send delivers msg, filling in the sender address when empty
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = s.from
	}
	m, err := msg.newMsg(time.Now())
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	client, err := mail.NewClient(s.host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to configure SMTP client for %s: %w", addr, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", addr, err)
	}

	log.Printf("[MAIL] Sent %q to %s via %s", msg.Subject, msg.To, addr)
	return nil
}

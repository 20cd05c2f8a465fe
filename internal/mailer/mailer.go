// Package mailer delivers document summaries by email.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wneessen/go-mail"

	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/jonathan/legal-digest/internal/types"
)

// DigestSubject is the subject line of every summary email
const DigestSubject = "Your Document Summary"

// Message is a plain-text email
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var validate = validator.New()

// NewDigestMessage builds the summary email for a recipient. The body uses
// the same layout as the plain-text report download.
func NewDigestMessage(to string, summary []string, risks []types.Risk) (Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Message{}, &types.ValidationError{Field: "email", Message: "No recipient email provided"}
	}
	if err := validate.Var(to, "email"); err != nil {
		return Message{}, &types.ValidationError{Field: "email", Message: fmt.Sprintf("invalid email address %q", to)}
	}

	bullets := make([]string, 0, len(summary))
	for _, s := range summary {
		if strings.TrimSpace(s) != "" {
			bullets = append(bullets, s)
		}
	}
	if len(bullets) == 0 {
		return Message{}, &types.ValidationError{Field: "summary", Message: "No summary provided"}
	}

	body := rendering.RenderText(rendering.Report{
		Summary: types.Summary{Bullets: bullets},
		Risks:   risks,
	})
	return Message{To: to, Subject: DigestSubject, Body: body}, nil
}

// newMsg builds the MIME message. The body is quoted-printable so long
// contract sentences are folded below the RFC 5322 line limit.
func (m Message) newMsg(now time.Time) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithEncoding(mail.EncodingQP), mail.WithCharset(mail.CharsetUTF8))
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetDateWithValue(now)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	return msg, nil
}

// Bytes encodes the message as it is sent on the wire
func (m Message) Bytes(now time.Time) ([]byte, error) {
	msg, err := m.newMsg(now)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return buf.Bytes(), nil
}

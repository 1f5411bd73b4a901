// Package mailer sends plain-text notification emails.
package mailer

import (
	"context"
	"fmt"
	"time"

	"flight-booking/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// bounds the dial and every SMTP command
const smtpTimeout = 15 * time.Second

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a mailer that only logs when no SMTP host
// is configured (local development).
func New(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		return &LogMailer{log: log.With(zap.String("component", "mailer"))}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg utils.EmailConfig
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	email, err := newMsg(m.cfg.From, msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", m.cfg.Host, err)
	}

	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithTimeout(smtpTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(m.cfg.Port))
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

// newMsg builds the MIME message. Headers are RFC 2047 encoded by go-mail.
func newMsg(from string, msg Message) (*mail.Msg, error) {
	email := mail.NewMsg()
	if err := email.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := email.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	email.Subject(msg.Subject)
	email.SetDate()
	email.SetMessageID()
	email.SetBodyString(mail.TypeTextPlain, msg.Body)
	return email, nil
}

type LogMailer struct {
	log *zap.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Email (not sent, SMTP disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

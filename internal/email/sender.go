package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/lastchanceair/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the provider named in cfg. A provider that lacks credentials
// falls back to the no-op sender.
func NewSender(cfg config.EmailConfig) Sender {
	switch cfg.Provider {
	case config.ProviderResend:
		if cfg.ResendAPIKey == "" {
			log.Printf("resend selected but RESEND_API_KEY is empty, emails disabled")
			return NoopSender{}
		}
		return NewResendSender(cfg.ResendAPIKey, cfg.From)
	case config.ProviderSMTP:
		if cfg.SMTP.Host == "" {
			log.Printf("smtp selected but host is empty, emails disabled")
			return NoopSender{}
		}
		return NewSMTPSender(cfg.SMTP, cfg.From)
	default:
		return NoopSender{}
	}
}

// NoopSender drops every message.
type NoopSender struct{}

func (NoopSender) Send(_ context.Context, msg Message) error {
	log.Printf("email provider not configured, skipping %q to %s", msg.Subject, msg.To)
	return nil
}

func (m Message) String() string {
	return fmt.Sprintf("%s -> %s", m.Subject, m.To)
}

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/lastchanceair/internal/email"
	"github.com/Domenick1991/lastchanceair/internal/kafka"
)

// Handler renders notification events into emails and sends them. Send
// failures are logged and swallowed.
type Handler struct {
	sender email.Sender
}

func NewHandler(sender email.Sender) *Handler {
	return &Handler{sender: sender}
}

func (h *Handler) Handle(ctx context.Context, event kafka.NotificationEvent) error {
	msg, err := render(event)
	if err != nil {
		log.Printf("drop %s notification to %s: %v", event.Type, event.To, err)
		return nil
	}
	if err := h.sender.Send(ctx, msg); err != nil {
		log.Printf("send %s notification to %s: %v", event.Type, event.To, err)
	}
	return nil
}

// Deliver lets the handler act as the dispatcher's in-process deliverer.
func (h *Handler) Deliver(ctx context.Context, event kafka.NotificationEvent) error {
	return h.Handle(ctx, event)
}

func render(event kafka.NotificationEvent) (email.Message, error) {
	switch event.Type {
	case kafka.EventBookingConfirmed:
		if event.Booking == nil {
			return email.Message{}, fmt.Errorf("booking event without booking")
		}
		return email.BookingConfirmation(event.Booking, event.Flight)
	case kafka.EventPasswordReset:
		return email.PasswordReset(event.To, event.ResetLink)
	default:
		return email.Message{}, fmt.Errorf("unknown event type %q", event.Type)
	}
}

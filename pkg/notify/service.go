// Package notify delivers push notifications through Pushover.
package notify

import (
	"github.com/gregdel/pushover"
)

// Sender delivers a single notification message.
type Sender interface {
	Send(message, title string, priority int) error
}

// PushoverSender sends messages to one Pushover user.
type PushoverSender struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

func NewPushoverSender(appToken, userKey string) *PushoverSender {
	return &PushoverSender{
		app:       pushover.New(appToken),
		recipient: pushover.NewRecipient(userKey),
	}
}

func (s *PushoverSender) Send(message, title string, priority int) error {
	msg := &pushover.Message{
		Message:  message,
		Title:    title,
		Priority: priority,
	}
	_, err := s.app.SendMessage(msg, s.recipient)
	return err
}

package telegram

import (
	"context"
	"fmt"
)

// Client delivers plain text messages to a Telegram chat.
// chatID is either a numeric chat id or a public @channel name.
type Client interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

// DeliveryError wraps any failure to deliver a message (network, auth, rate limit).
type DeliveryError struct {
	ChatID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver message to chat %s: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// internal/infra/telegram/client.go
package telegram

import (
	"context"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
// Sends pass through a token bucket so bursts of failure reports stay under Telegram limits.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewTelebotAdapter(b *telebot.Bot, ratePerSec int) *TelebotAdapter {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &TelebotAdapter{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
	}
}

// SendMessage sends a plain text message to the chat. Every failure is returned
// as a *telegram.DeliveryError.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return &domainTelegram.DeliveryError{ChatID: chatID, Err: err}
	}

	_, err := tba.bot.Send(chatRecipient(chatID), text, &telebot.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		return &domainTelegram.DeliveryError{ChatID: chatID, Err: err}
	}
	return nil
}

// chatRecipient passes the configured chat through untouched: the Bot API
// accepts numeric ids and @channel names alike.
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

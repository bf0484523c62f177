// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands answers /start and /help. Only the configured chat gets
// a real answer; the bot serves a single account.
func RegisterBotCommands(b *telebot.Bot, chatID string, retryPeriod time.Duration, baseLogger *logrus.Entry) {
	commandsLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", startHandler(chatID, commandsLogger.WithField("command", "/start")))
	b.Handle("/help", helpHandler(chatID, retryPeriod, commandsLogger.WithField("command", "/help")))
}

func startHandler(chatID string, log *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if c.Chat() == nil {
			log.Warn("Command without a chat, ignoring")
			return nil
		}
		logCtx := log.WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /start command")

		if !isOwnChat(c.Chat(), chatID) {
			logCtx.Warn("Command from a foreign chat")
			return c.Send("This bot serves a single account and does not accept new users.")
		}
		return c.Send("Hi! I watch the review status of your latest homework and will write here when it changes.")
	}
}

func helpHandler(chatID string, retryPeriod time.Duration, log *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if c.Chat() == nil {
			log.Warn("Command without a chat, ignoring")
			return nil
		}
		logCtx := log.WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /help command")

		if !isOwnChat(c.Chat(), chatID) {
			logCtx.Warn("Command from a foreign chat")
			return c.Send("No commands are available to you.")
		}
		return c.Send(fmt.Sprintf(
			"I check the review API every %s and send a message when the status of your latest submission changes. "+
				"If the API fails I report the error here once until it recovers.\n\n/help - show this message.",
			retryPeriod,
		))
	}
}

func isOwnChat(chat *telebot.Chat, chatID string) bool {
	if chat == nil {
		return false
	}
	if strconv.FormatInt(chat.ID, 10) == chatID {
		return true
	}
	return chat.Username != "" && "@"+chat.Username == chatID
}

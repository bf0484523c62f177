package telegram

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// NewBot creates the bot without calling the Bot API, so a Telegram outage at
// startup never stops polling. Sends fail later as delivery errors instead.
func NewBot(token string, log *logrus.Entry) (*telebot.Bot, error) {
	return telebot.NewBot(botSettings(token, log))
}

func botSettings(token string, log *logrus.Entry) telebot.Settings {
	return telebot.Settings{
		Token:   token,
		Offline: true,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := log.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID).WithField("text", c.Text())
			}
			entry.Error("Telegram bot error")
		},
	}
}

// Identify fills b.Me via getMe so commands addressed as /start@botname match.
// Failure leaves the bot usable; only bare commands are recognised then.
func Identify(b *telebot.Bot) error {
	data, err := b.Raw("getMe", nil)
	if err != nil {
		return errors.Wrap(err, "getMe")
	}
	var resp struct {
		Result *telebot.User `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return errors.Wrap(err, "decode getMe response")
	}
	if resp.Result == nil {
		return errors.New("getMe returned no user")
	}
	b.Me = resp.Result
	return nil
}

package telegram

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	ChatID string
	Text   string
}

// fakeBotAPI records sendMessage calls and answers them like the Bot API.
type fakeBotAPI struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (f *fakeBotAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			http.NotFound(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		if !assert.NoError(t, err) {
			return
		}

		var params map[string]any
		if !assert.NoError(t, json.Unmarshal(body, &params)) {
			return
		}

		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{ChatID: params["chat_id"].(string), Text: params["text"].(string)})
		fail := f.fail
		f.mu.Unlock()

		if fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"}}}`))
	}
}

func (f *fakeBotAPI) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func newTestBot(t *testing.T, api *fakeBotAPI) *telebot.Bot {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	settings := botSettings("test-token", logrus.NewEntry(log))
	settings.URL = srv.URL
	settings.Synchronous = true
	b, err := telebot.NewBot(settings)
	require.NoError(t, err)
	return b
}

package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func unavailableBotAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewBotSurvivesUnavailableAPI(t *testing.T) {
	srv := unavailableBotAPI(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	settings := botSettings("123:abc", logrus.NewEntry(log))
	settings.URL = srv.URL
	b, err := telebot.NewBot(settings)
	require.NoError(t, err)
	require.NotNil(t, b.Me)

	assert.Error(t, Identify(b))

	err = NewTelebotAdapter(b, 10).SendMessage(context.Background(), "42", "hi")
	var deliveryErr *domainTelegram.DeliveryError
	assert.True(t, errors.As(err, &deliveryErr), "got %v", err)
}

func TestIdentifySetsBotUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":99,"is_bot":true,"first_name":"Reviews","username":"review_bot"}}`))
	}))
	defer srv.Close()
	log := logrus.New()
	log.SetOutput(io.Discard)

	settings := botSettings("123:abc", logrus.NewEntry(log))
	settings.URL = srv.URL
	b, err := telebot.NewBot(settings)
	require.NoError(t, err)

	require.NoError(t, Identify(b))
	assert.Equal(t, "review_bot", b.Me.Username)
}

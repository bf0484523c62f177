package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConfigurationError is fatal: the process must not start polling.
// Missing lists every absent required variable; Variable/Err describe a malformed one.
type ConfigurationError struct {
	Missing  []string
	Variable string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid %s: %v", e.Variable, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func errNotPositive(raw string) error {
	return fmt.Errorf("%q is not a positive value", raw)
}

// CheckTokens verifies that the API token, the bot token and the destination
// chat are all set. All missing names are reported at once.
func CheckTokens(cfg *AppConfig, log *logrus.Entry) error {
	required := []struct {
		name  string
		value string
	}{
		{EnvPracticumToken, cfg.PracticumToken},
		{EnvTelegramToken, cfg.TelegramToken},
		{EnvTelegramChatID, cfg.TelegramChatID},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	err := &ConfigurationError{Missing: missing}
	// Logged at fatal level without exiting; the caller owns the exit.
	log.WithField("missing", missing).Log(logrus.FatalLevel, err.Error())
	return err
}

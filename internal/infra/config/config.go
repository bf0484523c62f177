package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEndpoint is the homework statuses endpoint of the review API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const (
	defaultRetryPeriod    = 10 * time.Minute
	defaultRequestTimeout = 30 * time.Second
	defaultRatePerSec     = 1
)

// Environment variable names.
const (
	EnvPracticumToken    = "PRACTICUM_TOKEN"
	EnvTelegramToken     = "TELEGRAM_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_CHAT_ID"
	EnvPracticumEndpoint = "PRACTICUM_ENDPOINT"
	EnvRetryPeriod       = "RETRY_PERIOD"
	EnvRequestTimeout    = "REQUEST_TIMEOUT"
	EnvTelegramRate      = "TELEGRAM_RATE_PER_SEC"
	EnvCommandsEnabled   = "TELEGRAM_COMMANDS_ENABLED"
	EnvLogLevel          = "LOG_LEVEL"
	EnvEnvironment       = "ENVIRONMENT"
)

// AppConfig holds all configuration for the application.
// It is built once at startup and treated as immutable afterwards.
type AppConfig struct {
	PracticumToken     string
	TelegramToken      string
	TelegramChatID     string // numeric chat id or @channel
	PracticumEndpoint  string
	RetryPeriod        time.Duration
	RequestTimeout     time.Duration
	TelegramRatePerSec int
	CommandsEnabled    bool
	LogLevel           string
	Environment        string
}

// Load reads configuration from environment variables and a .env file.
// With no envFiles, ./.env is loaded if present; explicitly named files must exist.
// godotenv never overrides variables that are already set.
// Required tokens are not checked here, see CheckTokens.
func Load(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, &ConfigurationError{Variable: "env file", Err: err}
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &AppConfig{
		PracticumToken:    getenv(EnvPracticumToken),
		TelegramToken:     getenv(EnvTelegramToken),
		TelegramChatID:    getenv(EnvTelegramChatID),
		PracticumEndpoint: getenv(EnvPracticumEndpoint),
		LogLevel:          strings.ToLower(getenv(EnvLogLevel)),
		Environment:       strings.ToLower(getenv(EnvEnvironment)),
	}
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	var err error
	if cfg.RetryPeriod, err = durationEnv(EnvRetryPeriod, defaultRetryPeriod); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationEnv(EnvRequestTimeout, defaultRequestTimeout); err != nil {
		return nil, err
	}

	cfg.TelegramRatePerSec = defaultRatePerSec
	if raw := getenv(EnvTelegramRate); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil || rate <= 0 {
			return nil, &ConfigurationError{Variable: EnvTelegramRate, Err: errNotPositive(raw)}
		}
		cfg.TelegramRatePerSec = rate
	}

	if raw := getenv(EnvCommandsEnabled); raw != "" {
		cfg.CommandsEnabled, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, &ConfigurationError{Variable: EnvCommandsEnabled, Err: err}
		}
	}

	return cfg, nil
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// durationEnv accepts Go durations ("10m") or whole seconds ("600").
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, &ConfigurationError{Variable: key, Err: errNotPositive(raw)}
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigurationError{Variable: key, Err: err}
	}
	if d <= 0 {
		return 0, &ConfigurationError{Variable: key, Err: errNotPositive(raw)}
	}
	return d, nil
}

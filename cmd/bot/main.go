package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "homework-bot",
	Short:         "Watch homework review statuses and report changes to Telegram",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		log.WithField("endpoint", cfg.PracticumEndpoint).WithField("retry_period", cfg.RetryPeriod).Info("Configuration is valid")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and runs the credential guard.
func setup() (*config.AppConfig, *logrus.Entry, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		logrus.WithError(err).Error("Could not load application configuration")
		return nil, nil, err
	}

	log := logger.Component(logger.New(cfg), "main")
	log.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Configuration loaded")

	if err := config.CheckTokens(cfg, log); err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	baseLogger := log.Logger

	bot, err := telegram.NewBot(cfg.TelegramToken, logger.Component(baseLogger, "telegram"))
	if err != nil {
		log.WithError(err).Error("Could not create Telegram bot")
		return err
	}
	notifier := telegram.NewTelebotAdapter(bot, cfg.TelegramRatePerSec)

	if cfg.CommandsEnabled {
		if err := telegram.Identify(bot); err != nil {
			log.WithError(err).Warn("Could not identify the bot, only bare commands will be recognised")
		}
		telegram.RegisterBotCommands(bot, cfg.TelegramChatID, cfg.RetryPeriod, logger.Component(baseLogger, "telegram"))
		go bot.Start()
		defer bot.Stop()
		log.Info("Bot command handlers registered.")
	}

	api, err := practicum.NewHTTPClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.RequestTimeout)
	if err != nil {
		log.WithError(err).Error("Could not create API client")
		return err
	}

	statusService := app.NewStatusService(
		api,
		notifier,
		cfg.TelegramChatID,
		app.InitialFromDate(time.Now(), cfg.RetryPeriod),
		logger.Component(baseLogger, "status_service"),
	)

	pollScheduler := scheduler.NewPollScheduler(statusService, cfg.RetryPeriod, logger.Component(baseLogger, "scheduler"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("retry_period", cfg.RetryPeriod).Info("Application setup complete. Polling started.")
	pollScheduler.Start(ctx)

	<-ctx.Done()
	log.Info("Shutting down application...")
	pollScheduler.Stop()
	log.Info("Application shut down gracefully.")
	return nil
}

// internal/app/status_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/practicum"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const failurePrefix = "Program failure: "

// StatusService runs poll iterations against the review API and reports
// status changes of the latest submission to a single chat.
//
// Its state lives only in memory and belongs to the goroutine calling Tick;
// a StatusService must not be shared between loops.
type StatusService struct {
	api      practicum.Client
	notifier domainTelegram.Client
	chatID   string
	logger   *logrus.Entry

	fromDate    int64
	lastMessage string
	lastFailure string
}

func NewStatusService(
	api practicum.Client,
	notifier domainTelegram.Client,
	chatID string,
	fromDate int64,
	logger *logrus.Entry,
) *StatusService {
	return &StatusService{
		api:      api,
		notifier: notifier,
		chatID:   chatID,
		fromDate: fromDate,
		logger:   logger,
	}
}

// InitialFromDate is the lower bound of the first query: one interval back from now.
func InitialFromDate(now time.Time, retryPeriod time.Duration) int64 {
	return now.Add(-retryPeriod).Unix()
}

// FromDate returns the lower bound the next iteration will query with.
func (s *StatusService) FromDate() int64 { return s.fromDate }

// LastMessage returns the last status notification that was sent.
func (s *StatusService) LastMessage() string { return s.lastMessage }

// Tick runs one iteration. Failures, panics included, are logged and reported
// to the chat here; the returned error is informational only.
func (s *StatusService) Tick(ctx context.Context) (err error) {
	log := s.logger.WithFields(logrus.Fields{
		"poll_id":   uuid.NewString(),
		"from_date": s.fromDate,
	})

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected fault: %v", r)
			s.handleFailure(ctx, log.WithField("stack", string(debug.Stack())), err)
		}
	}()

	if err = s.poll(ctx, log); err != nil {
		s.handleFailure(ctx, log, err)
		return err
	}
	s.lastFailure = ""
	return nil
}

func (s *StatusService) poll(ctx context.Context, log *logrus.Entry) error {
	payload, err := s.api.HomeworkStatuses(ctx, s.fromDate)
	if err != nil {
		return err
	}

	resp, err := homework.CheckResponse(payload)
	if err != nil {
		return err
	}

	if latest, ok := resp.Latest(); ok {
		sub, err := homework.ParseSubmission(latest)
		if err != nil {
			return err
		}
		log = log.WithFields(logrus.Fields{"homework": sub.Name, "status": sub.Status})

		message := sub.Message()
		if message != s.lastMessage {
			s.send(ctx, log, message)
			s.lastMessage = message
		} else {
			log.Debug("Status unchanged, nothing to send")
		}
	} else {
		log.Debug("No new homework statuses")
	}

	s.fromDate = resp.CurrentDate
	return nil
}

// send delivers text and swallows delivery failures, notifier panics included.
func (s *StatusService) send(ctx context.Context, log *logrus.Entry, text string) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("Telegram notifier panicked")
			sent = false
		}
	}()

	if err := s.notifier.SendMessage(ctx, s.chatID, text); err != nil {
		log.WithError(err).Error("Failed to send Telegram message")
		return false
	}
	log.WithField("message", text).Debug("Message sent")
	return true
}

// handleFailure logs a failed iteration and reports it to the chat unless the
// same failure was already reported.
func (s *StatusService) handleFailure(ctx context.Context, log *logrus.Entry, err error) {
	log = log.WithFields(errorFields(err)).WithError(err)
	log.Error("Poll iteration failed")

	message := failurePrefix + err.Error()
	if message == s.lastFailure {
		log.Debug("Failure already reported, not repeating")
		return
	}
	if s.send(ctx, log, message) {
		s.lastFailure = message
	}
}

func errorFields(err error) logrus.Fields {
	var (
		transportErr *practicum.TransportError
		responseErr  *practicum.ResponseError
		schemaErr    *homework.SchemaError
		verdictErr   *homework.UnknownVerdictError
	)

	switch {
	case errors.As(err, &transportErr):
		return logrus.Fields{
			"error_kind": "transport",
			"endpoint":   transportErr.Endpoint,
			"cause":      pkgerrors.Cause(transportErr.Err).Error(),
		}
	case errors.As(err, &responseErr):
		return logrus.Fields{
			"error_kind":  "response",
			"endpoint":    responseErr.Endpoint,
			"status_code": responseErr.StatusCode,
		}
	case errors.As(err, &schemaErr):
		return logrus.Fields{"error_kind": "schema", "reason": schemaErr.Reason.Error()}
	case errors.As(err, &verdictErr):
		return logrus.Fields{"error_kind": "unknown_verdict", "value": verdictErr.Value}
	default:
		return logrus.Fields{"error_kind": "unexpected"}
	}
}

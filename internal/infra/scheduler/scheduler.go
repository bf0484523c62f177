package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Ticker runs one poll iteration. Implementations handle their own failures;
// a returned error is only logged.
type Ticker interface {
	Tick(ctx context.Context) error
}

// PollScheduler drives a Ticker on a fixed cadence: the next iteration starts
// one interval after the previous one finished, whatever its outcome.
type PollScheduler struct {
	ticker   Ticker
	schedule cron.Schedule
	logger   *logrus.Entry

	cancel context.CancelFunc
	done   chan struct{}
}

func NewPollScheduler(ticker Ticker, interval time.Duration, logger *logrus.Entry) *PollScheduler {
	return newPollScheduler(ticker, fixedDelay(interval), logger)
}

// fixedDelay is a cron.Schedule that fires exactly one delay after t.
// cron.Every is not used: it truncates to whole seconds, both the delay and t.
type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time { return t.Add(time.Duration(d)) }

func newPollScheduler(ticker Ticker, schedule cron.Schedule, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		ticker:   ticker,
		schedule: schedule,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Cancellation is observed only while
// sleeping: a running iteration gets a detached context and always completes.
func (s *PollScheduler) Run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	iterCtx := context.WithoutCancel(ctx)

	for {
		if err := s.ticker.Tick(iterCtx); err != nil {
			s.logger.WithError(err).Debug("Poll iteration finished with error")
		}

		finished := time.Now()
		next := s.schedule.Next(finished)
		s.logger.WithField("next_poll", next.Format(time.RFC3339)).Debug("Sleeping until next poll")

		timer := time.NewTimer(next.Sub(finished))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Poll loop stopped")
			return
		case <-timer.C:
		}
	}
}

// Start runs the loop in a goroutine.
func (s *PollScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting poll scheduler...")
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.Run(ctx)
	}()
}

// Stop cancels the loop and waits for the current iteration to finish.
func (s *PollScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.logger.Info("Stopping poll scheduler...")
	s.cancel()
	<-s.done
	s.logger.Info("Poll scheduler gracefully stopped.")
}

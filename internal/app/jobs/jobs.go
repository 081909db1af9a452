// Package jobs runs the server's periodic maintenance.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionPurger drops expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner bound to a base context.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(), timeout: time.Minute}
}

// AddSessionPurge registers the purge on a cron schedule such as "@every 1h".
func (s *Scheduler) AddSessionPurge(ctx context.Context, schedule string, p SessionPurger) error {
	_, err := s.cron.AddFunc(schedule, func() { PurgeSessions(ctx, p, s.timeout) })
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeSessions runs one purge and logs the outcome.
func PurgeSessions(ctx context.Context, p SessionPurger, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	n, err := p.PurgeExpiredSessions(ctx)
	if err != nil {
		slog.Error("session purge failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		slog.Info("expired sessions purged", "count", n)
	}
}

// Package resync periodically reconciles the bookmark set while a
// long-running client session is open.
package resync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/bokdeok/internal/metrics"
)

// Loader reloads state from the backend.
type Loader interface {
	Load(ctx context.Context) error
}

// Scheduler runs a Loader on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	loader Loader
	log    *slog.Logger
	after  func()
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithAfterRun sets a function called after every run, e.g. to redraw.
func WithAfterRun(fn func()) Option {
	return func(s *Scheduler) {
		s.after = fn
	}
}

// New creates a Scheduler that calls loader every interval.
func New(loader Loader, interval time.Duration, log *slog.Logger, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("resync interval must be positive (got %s)", interval)
	}

	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		loader: loader,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.cron.AddFunc("@every "+interval.String(), s.Run); err != nil {
		return nil, fmt.Errorf("scheduling resync: %w", err)
	}

	return s, nil
}

// Start begins running scheduled reloads.
func (s *Scheduler) Start() {
	s.log.Info("resync scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once a running
// reload has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("resync scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Run performs one reload.
func (s *Scheduler) Run() {
	metrics.ResyncRunsTotal.Inc()
	s.log.Debug("scheduled resync starting")
	if err := s.loader.Load(context.Background()); err != nil {
		s.log.Error("scheduled resync failed", "error", err)
	}
	if s.after != nil {
		s.after()
	}
}

// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner with one registered job.
type Scheduler struct {
	cron *cron.Cron
	id   cron.EntryID
}

// New registers job under the standard 5-field spec (descriptors such as "@monthly" work too).
// A run is skipped while the previous one is still going.
func New(ctx context.Context, spec string, job func(ctx context.Context)) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	id, err := c.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("register job %q: %w", spec, err)
	}
	return &Scheduler{cron: c, id: id}, nil
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "next", s.Next())
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// Next returns the next activation time, or the zero time if the scheduler is not running.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.id).Next
}

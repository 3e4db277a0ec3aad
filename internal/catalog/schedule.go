// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds a single scheduled refresh.
const refreshTimeout = 30 * time.Second

// scheduleParser accepts standard five-field schedules, an optional leading seconds
// field and descriptors such as "@every 5m".
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler refreshes a Service's snapshots on a cron schedule so the
// caches are rebuilt in the background instead of on a request.
type Scheduler struct {
	cron *cron.Cron
	job  *refreshJob
}

// NewScheduler validates schedule and registers the refresh job. The job is
// not started until Start is called.
func NewScheduler(svc *Service, schedule string) (*Scheduler, error) {
	logger := cronLogger{slog.Default().With("system", "cron")}
	c := cron.New(
		cron.WithParser(scheduleParser),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	job := &refreshJob{svc: svc, timeout: refreshTimeout}
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("snapshot refresh schedule %q: %w", schedule, err)
	}
	return &Scheduler{cron: c, job: job}, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running refresh to finish or
// ctx to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("snapshot refresh still running at shutdown")
	}
}

// refreshJob is the cron.Job that reloads every snapshot.
type refreshJob struct {
	svc     *Service
	timeout time.Duration
}

func (j *refreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	if err := j.svc.Refresh(ctx); err != nil {
		slog.Warn("snapshot refresh failed, keeping previous snapshots", "error", err)
		return
	}
	slog.Debug("snapshots refreshed", "duration", time.Since(start))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}

// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jobs

import (
	"context"
	"log/slog"

	"github.com/sul-dlss/dor-services-client-sub000/api"
)

// Checker fetches the current status of a job.
type Checker interface {
	Check(ctx context.Context, jobID string) (api.JobStatus, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, jobID string) (api.JobStatus, error)

func (f CheckerFunc) Check(ctx context.Context, jobID string) (api.JobStatus, error) {
	return f(ctx, jobID)
}

// Poller waits for jobs to complete. It keeps no state between calls to
// Wait and may be shared.
type Poller struct {
	checker Checker
	config  Config
	clock   Clock
	logger  *slog.Logger
}

type PollerOption func(*Poller)

func WithClock(c Clock) PollerOption {
	return func(p *Poller) {
		if c != nil {
			p.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPoller(checker Checker, cfg Config, opts ...PollerOption) *Poller {
	p := &Poller{
		checker: checker,
		config:  cfg.withDefaults(),
		clock:   SystemClock{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the effective configuration.
func (p *Poller) Config() Config { return p.config }

// Wait checks the job until the server reports it complete or the timeout
// elapses. Reaching the timeout yields a TimedOut outcome with a nil error.
// An error from the Checker, or cancellation of ctx, is returned as is.
func (p *Poller) Wait(ctx context.Context, h Handle) (Outcome, error) {
	cfg := p.config
	deadline := p.clock.Now().Add(cfg.Timeout)

	// bounded interrupts a check that is still in flight at the deadline.
	bounded, cancel := p.clock.WithDeadline(ctx, deadline)
	defer cancel()

	log := p.logger.With("job_id", h.JobID)
	schedule := cfg.backOff()
	attempts := 0

	for {
		remaining := deadline.Sub(p.clock.Now())
		if remaining <= 0 {
			log.Warn("job not complete before timeout", "timeout", cfg.Timeout, "attempts", attempts)
			return timedOutOutcome(cfg.Timeout, attempts), nil
		}

		attempts++
		status, err := p.checker.Check(bounded, h.JobID)
		if err != nil {
			if interruptedByDeadline(ctx, bounded) {
				log.Warn("job check interrupted by timeout", "timeout", cfg.Timeout, "attempts", attempts)
				return timedOutOutcome(cfg.Timeout, attempts), nil
			}
			return Outcome{}, err
		}
		if status.IsComplete() {
			log.Debug("job complete", "attempts", attempts, "errors", len(status.Output.Errors))
			return completedOutcome(status.Output.Errors, attempts), nil
		}

		pause := min(schedule.NextBackOff(), remaining)
		log.Debug("job not complete, backing off", "status", status.Status, "pause", pause)
		if err := p.clock.Sleep(bounded, pause); err != nil {
			if interruptedByDeadline(ctx, bounded) {
				return timedOutOutcome(cfg.Timeout, attempts), nil
			}
			return Outcome{}, err
		}
	}
}

// interruptedByDeadline reports whether bounded ended because of its own
// deadline rather than because the caller's context ended.
func interruptedByDeadline(parent, bounded context.Context) bool {
	return parent.Err() == nil && bounded.Err() != nil
}

// Wait is a convenience for a one-off wait with a fresh Poller.
func Wait(ctx context.Context, checker Checker, h Handle, cfg Config) (Outcome, error) {
	return NewPoller(checker, cfg).Wait(ctx, h)
}

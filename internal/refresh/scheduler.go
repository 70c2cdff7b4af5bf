// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package refresh drives a fetcher on a cancellable recurring schedule with
// at most one fetch in flight.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Option configures a scheduler.
type Option func(*Scheduler)

// WithInterval sets the delay between cycles.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock swaps the timer source.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithMetrics sets the cycle recorder.
func WithMetrics(r Recorder) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithName names the scheduler in logs, metrics and errors.
func WithName(n string) Option {
	return func(s *Scheduler) {
		if n != "" {
			s.name = n
		}
	}
}

// Scheduler repeatedly refreshes a fetcher. A new cycle always aborts the
// previous one, so at most one token and one pending timer exist.
type Scheduler struct {
	fetcher  Fetcher
	interval time.Duration
	clock    Clock
	log      zerolog.Logger
	rec      Recorder
	name     string

	mx      sync.Mutex
	parent  context.Context
	unbind  func() bool
	cancel  context.CancelFunc
	cycleID uint64
	timer   Timer
	timerID uint64
	stopped bool
}

// New returns a scheduler for f. It is idle until Start or Refresh.
func New(f Fetcher, opts ...Option) *Scheduler {
	s := Scheduler{
		fetcher:  f,
		interval: DefaultInterval,
		clock:    realClock{},
		log:      zerolog.Nop(),
		rec:      nopRecorder{},
		name:     uuid.NewString(),
		parent:   context.Background(),
	}
	for _, o := range opts {
		o(&s)
	}
	s.log = s.log.With().Str("scheduler", s.name).Logger()

	return &s
}

// Name returns the scheduler name.
func (s *Scheduler) Name() string {
	return s.name
}

// Interval returns the current delay between cycles.
func (s *Scheduler) Interval() time.Duration {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.interval
}

// SetInterval changes the delay. It applies from the next armed timer.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	s.interval = d
}

// Start binds ctx as the parent of every cycle and runs the first cycle.
// Cancelling ctx aborts the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	s.mx.Lock()
	if s.stopped {
		s.mx.Unlock()
		return
	}
	if s.unbind != nil {
		s.unbind()
	}
	s.parent = ctx
	s.unbind = context.AfterFunc(ctx, s.Abort)
	s.mx.Unlock()

	s.Refresh()
}

// Refresh aborts any pending work and runs a cycle in the calling goroutine.
func (s *Scheduler) Refresh() {
	s.mx.Lock()
	if s.stopped {
		s.mx.Unlock()
		return
	}
	s.abortLocked()
	if s.parent.Err() != nil {
		s.mx.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.cycleID++
	id := s.cycleID
	s.cancel = cancel
	s.mx.Unlock()

	start := s.clock.Now()
	s.rec.CycleStarted(s.name)
	err := s.fetch(ctx)
	elapsed := s.clock.Now().Sub(start)

	s.mx.Lock()
	current := id == s.cycleID && s.cancel != nil && ctx.Err() == nil
	if current {
		s.cancel = nil
	}
	cancel()

	switch {
	case !current:
		s.mx.Unlock()
		s.rec.CycleFinished(s.name, OutcomeSuperseded, elapsed)
		s.log.Debug().Err(err).Msg("Cycle superseded")
	case err == nil:
		s.armLocked()
		s.mx.Unlock()
		s.rec.CycleFinished(s.name, OutcomeSuccess, elapsed)
	case IsCancelled(err):
		s.mx.Unlock()
		s.rec.CycleFinished(s.name, OutcomeCancelled, elapsed)
		s.log.Debug().Msg("Cycle cancelled")
	default:
		s.mx.Unlock()
		s.rec.CycleFinished(s.name, OutcomeFailed, elapsed)
		s.log.Warn().Err(err).Msg("Refresh failed")
		s.fetcher.OnError(&FetchError{Scheduler: s.name, Err: err})

		s.mx.Lock()
		if id == s.cycleID && !s.stopped && s.timer == nil && s.parent.Err() == nil {
			s.armLocked()
		}
		s.mx.Unlock()
	}
}

// Abort cancels the in-flight fetch and the pending timer. It is idempotent.
func (s *Scheduler) Abort() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.abortLocked()
}

// Stop aborts and permanently disables the scheduler.
func (s *Scheduler) Stop() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.stopped = true
	s.abortLocked()
	if s.unbind != nil {
		s.unbind()
		s.unbind = nil
	}
}

// InFlight returns true while a fetch is running.
func (s *Scheduler) InFlight() bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.cancel != nil
}

// Pending returns true if a timer is armed.
func (s *Scheduler) Pending() bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.timer != nil
}

func (s *Scheduler) abortLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// Invalidates timers that fired but have not taken the lock yet, and
	// a failed cycle still reporting its error.
	s.timerID++
	s.cycleID++
}

func (s *Scheduler) armLocked() {
	s.timerID++
	tid := s.timerID
	s.timer = s.clock.AfterFunc(s.interval, func() {
		s.fire(tid)
	})
}

func (s *Scheduler) fire(tid uint64) {
	s.mx.Lock()
	if s.stopped || tid != s.timerID || s.timer == nil {
		s.mx.Unlock()
		return
	}
	s.timer = nil
	s.mx.Unlock()

	s.Refresh()
}

func (s *Scheduler) fetch(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetcher panicked: %v", r)
		}
	}()

	return s.fetcher.Refresh(ctx)
}

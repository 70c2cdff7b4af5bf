// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the delay between the end of a cycle and the next one.
const DefaultInterval = 5 * time.Second

// Fetcher is refreshed on a schedule.
type Fetcher interface {
	// Refresh fetches fresh state. It must return promptly once ctx is done.
	Refresh(ctx context.Context) error

	// OnError reports a failed cycle. Cancellations are never reported.
	OnError(err error)
}

// Funcs adapts a pair of functions to a Fetcher.
type Funcs struct {
	RefreshFn func(ctx context.Context) error
	OnErrorFn func(err error)
}

// Refresh calls RefreshFn.
func (f Funcs) Refresh(ctx context.Context) error {
	if f.RefreshFn == nil {
		return nil
	}
	return f.RefreshFn(ctx)
}

// OnError calls OnErrorFn.
func (f Funcs) OnError(err error) {
	if f.OnErrorFn != nil {
		f.OnErrorFn(err)
	}
}

// Timer is a pending one shot callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Outcome labels how a cycle ended.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeFailed     Outcome = "failed"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeSuperseded Outcome = "superseded"
)

// Recorder observes scheduler cycles.
type Recorder interface {
	CycleStarted(name string)
	CycleFinished(name string, outcome Outcome, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CycleStarted(string) {}

func (nopRecorder) CycleFinished(string, Outcome, time.Duration) {}

// FetchError wraps a failed fetch.
type FetchError struct {
	Scheduler string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("refresh %s: %v", e.Scheduler, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsCancelled returns true if err stems from an aborted cycle.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Copyright 2026 The Fluxterm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scheduler provides the pluggable timer abstraction the
// framer and grapheme coalescer use to arm their single-shot
// flush timeouts. Design notes in spec.md §9 call for this explicitly:
// neither timeout may be hard-wired to wall-clock time, since both
// subsystems must be deterministically testable.
package scheduler

import "time"

// Scheduler arms and cancels single-shot callbacks. Implementations
// must be safe to call from whatever goroutine owns the component
// using them; fluxterm's own components are single-threaded by
// contract (spec.md §5) and never call a Scheduler concurrently with
// themselves.
type Scheduler interface {
	// After arms fn to run once after d elapses, returning a handle
	// that Cancel can stop before it fires. Calling After again
	// on the same Scheduler does not affect previously armed timers.
	After(d time.Duration, fn func()) Cancel
}

// Cancel stops a previously armed timer. Cancel is idempotent: calling
// it after the timer has already fired, or calling it twice, is a
// no-op.
type Cancel func()

// real is the production Scheduler, backed by time.AfterFunc.
type real struct{}

// Real returns the wall-clock Scheduler used outside of tests.
func Real() Scheduler { return real{} }

func (real) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Manual is a deterministic Scheduler for tests: no timer fires until
// Advance is called, and Advance fires every armed callback whose
// deadline has passed, in the order they were armed.
type Manual struct {
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	deadline time.Duration
	fn       func()
	fired    bool
	canceled bool
}

// NewManual returns a Manual scheduler starting at a zero virtual
// clock.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) Cancel {
	t := &manualTimer{deadline: m.now + d, fn: fn}
	m.pending = append(m.pending, t)
	return func() { t.canceled = true }
}

// Advance moves the virtual clock forward by d, firing (in arm order)
// every non-canceled timer whose deadline has now passed.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	for _, t := range m.pending {
		if !t.fired && !t.canceled && t.deadline <= m.now {
			t.fired = true
			t.fn()
		}
	}
	m.compact()
}

func (m *Manual) compact() {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.fired && !t.canceled {
			live = append(live, t)
		}
	}
	m.pending = live
}

// Pending reports how many armed, unfired, non-canceled timers exist.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.fired && !t.canceled {
			n++
		}
	}
	return n
}

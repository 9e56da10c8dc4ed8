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

// Package scroll implements a velocity-weighted exponential scroll
// accelerator: fast, tight ticks produce a rising multiplier; a gap
// longer than the streak timeout resets the streak.
package scroll

import (
	"math"
	"time"
)

const (
	// DefaultA is the acceleration coefficient.
	DefaultA = 0.8
	// DefaultTau scales the velocity term inside the exponential.
	DefaultTau = 3
	// DefaultMaxMultiplier caps the returned multiplier.
	DefaultMaxMultiplier = 6
	// DefaultHistorySize is the number of inter-tick intervals retained.
	DefaultHistorySize = 3
	// DefaultStreakTimeout ends a streak once a tick gap exceeds it.
	DefaultStreakTimeout = 150 * time.Millisecond
)

// Accelerator tracks the recent inter-tick intervals of a scroll
// input stream and converts them into a multiplier suitable for
// scaling a scroll delta.
type Accelerator struct {
	A              float64
	Tau            float64
	MaxMultiplier  float64
	HistorySize    int
	StreakTimeout  time.Duration
	history        []time.Duration
	last           time.Time
	haveLast       bool
}

// New constructs an Accelerator with the library's documented
// defaults.
func New() *Accelerator {
	return &Accelerator{
		A:             DefaultA,
		Tau:           DefaultTau,
		MaxMultiplier: DefaultMaxMultiplier,
		HistorySize:   DefaultHistorySize,
		StreakTimeout: DefaultStreakTimeout,
	}
}

// Tick records a scroll event occurring at now and returns the
// multiplier to apply to this tick's scroll delta.
func (a *Accelerator) Tick(now time.Time) float64 {
	if !a.haveLast {
		a.haveLast = true
		a.last = now
		return 1
	}

	gap := now.Sub(a.last)
	a.last = now

	if gap > a.StreakTimeout {
		a.history = nil
		return 1
	}

	a.history = append(a.history, gap)
	if len(a.history) > a.HistorySize {
		a.history = a.history[len(a.history)-a.HistorySize:]
	}

	var sum time.Duration
	for _, d := range a.history {
		sum += d
	}
	avgMillis := float64(sum.Milliseconds()) / float64(len(a.history))
	if avgMillis <= 0 {
		return a.MaxMultiplier
	}

	v := 100 / avgMillis
	multiplier := 1 + a.A*(math.Exp(v/a.Tau)-1)
	if multiplier > a.MaxMultiplier {
		return a.MaxMultiplier
	}
	return multiplier
}

// Reset clears the recorded interval history; the next Tick behaves
// as the start of a new streak.
func (a *Accelerator) Reset() {
	a.history = nil
	a.haveLast = false
}

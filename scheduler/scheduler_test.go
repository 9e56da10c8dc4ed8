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

package scheduler

import (
	"testing"
	"time"
)

func TestManualDoesNotFireBeforeAdvance(t *testing.T) {
	m := NewManual()
	fired := false
	m.After(10*time.Millisecond, func() { fired = true })
	if fired {
		t.Fatal("timer fired without Advance")
	}
	if got := m.Pending(); got != 1 {
		t.Fatalf("Pending() = %d, want 1", got)
	}
}

func TestManualFiresAtDeadline(t *testing.T) {
	m := NewManual()
	fired := false
	m.After(10*time.Millisecond, func() { fired = true })
	m.Advance(5 * time.Millisecond)
	if fired {
		t.Fatal("timer fired early")
	}
	m.Advance(5 * time.Millisecond)
	if !fired {
		t.Fatal("timer did not fire at deadline")
	}
	if got := m.Pending(); got != 0 {
		t.Fatalf("Pending() = %d, want 0", got)
	}
}

func TestManualCancelPreventsFiring(t *testing.T) {
	m := NewManual()
	fired := false
	cancel := m.After(10*time.Millisecond, func() { fired = true })
	cancel()
	m.Advance(20 * time.Millisecond)
	if fired {
		t.Fatal("canceled timer fired")
	}
}

func TestManualFiresInArmOrder(t *testing.T) {
	m := NewManual()
	var order []int
	m.After(5*time.Millisecond, func() { order = append(order, 1) })
	m.After(5*time.Millisecond, func() { order = append(order, 2) })
	m.Advance(10 * time.Millisecond)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
}

func TestRealSchedulerFires(t *testing.T) {
	s := Real()
	done := make(chan struct{})
	s.After(1*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real scheduler never fired")
	}
}

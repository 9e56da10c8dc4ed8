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

// Package framer accumulates raw terminal bytes and peels off complete
// escape sequences (or single characters) from the front of the
// buffer, the way tcell's inputParser.scan does, except split out of
// the fused parse-and-dispatch loop into its own component with an
// explicit state shape: CSI, OSC, SS3, and legacy X10 mouse tokens are
// recognised by looking for their respective terminators rather than
// by repeatedly re-testing the whole buffer from the start.
package framer

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fluxterm/fluxterm/scheduler"
)

// DefaultTimeout is the ambiguous-prefix flush delay (10ms per the
// external configuration surface).
const DefaultTimeout = 10 * time.Millisecond

// Framer accepts raw bytes and emits complete terminal sequences. It
// is not safe for concurrent use from multiple goroutines, matching
// the single-owner concurrency model: the only asynchrony is its own
// timeout callback, guarded internally.
type Framer struct {
	mu      sync.Mutex
	buf     []byte
	sched   scheduler.Scheduler
	timeout time.Duration
	cancel  scheduler.Cancel
	onEmit  func(seq []byte)
}

// New constructs a Framer. onEmit is called once per emitted sequence,
// both for sequences peeled synchronously inside Push and for ones
// flushed later by the timeout. onEmit may be nil if the caller only
// wants Push's synchronous return value.
func New(sched scheduler.Scheduler, timeout time.Duration, onEmit func(seq []byte)) *Framer {
	return &Framer{sched: sched, timeout: timeout, onEmit: onEmit}
}

// Push cancels any pending timeout, appends data to the buffer (after
// the 8-bit-meta rewrite below), and peels as many complete sequences
// as possible. It returns the sequences emitted synchronously; any
// sequence produced later by a timeout only reaches onEmit.
func (f *Framer) Push(data []byte) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelLocked()

	if len(data) == 0 && len(f.buf) == 0 {
		return [][]byte{{}}
	}

	// Legacy 8-bit meta compatibility: a lone high byte in a push
	// becomes ESC + (byte-128) before framing.
	if len(data) == 1 && data[0] > 127 {
		data = []byte{0x1b, data[0] - 128}
	}

	f.buf = append(f.buf, data...)

	var out [][]byte
	for len(f.buf) > 0 {
		seq, rest, needMore := peel(f.buf)
		if needMore {
			f.buf = rest
			f.armLocked()
			break
		}
		cp := append([]byte(nil), seq...)
		out = append(out, cp)
		if f.onEmit != nil {
			f.onEmit(cp)
		}
		f.buf = rest
	}
	return out
}

// Flush cancels any pending timeout and returns whatever is currently
// buffered, as-is, clearing the buffer. It returns nil if the buffer
// is empty.
func (f *Framer) Flush() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	if len(f.buf) == 0 {
		return nil
	}
	seq := f.buf
	f.buf = nil
	return seq
}

// Clear cancels any pending timeout and discards the buffer without
// emitting it.
func (f *Framer) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	f.buf = nil
}

// Destroy cancels the pending timeout and zeroes the buffer. Framer
// must not be used again afterward.
func (f *Framer) Destroy() {
	f.Clear()
}

func (f *Framer) armLocked() {
	if f.sched == nil {
		return
	}
	timeout := f.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f.cancel = f.sched.After(timeout, f.onTimeout)
}

func (f *Framer) cancelLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Framer) onTimeout() {
	f.mu.Lock()
	if len(f.buf) == 0 {
		f.mu.Unlock()
		return
	}
	seq := f.buf
	f.buf = nil
	f.cancel = nil
	onEmit := f.onEmit
	f.mu.Unlock()

	if onEmit != nil {
		onEmit(seq)
	}
}

// peel attempts to remove one complete token from the front of buf.
// needMore is true when buf is a non-empty proper prefix of some
// completable sequence and the caller should wait for more bytes (or
// a timeout).
func peel(buf []byte) (seq, rest []byte, needMore bool) {
	if buf[0] != 0x1b {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			size = 1
		}
		return buf[:size], buf[size:], false
	}

	if len(buf) == 1 {
		return nil, buf, true
	}

	switch buf[1] {
	case '[':
		return peelCSI(buf)
	case ']':
		return peelOSC(buf)
	case 'O':
		if len(buf) >= 3 {
			return buf[:3], buf[3:], false
		}
		return nil, buf, true
	default:
		// ESC <char>: meta sequence, or any unrecognised two-byte
		// escape. Either way it's complete once the second byte has
		// arrived.
		return buf[:2], buf[2:], false
	}
}

func peelCSI(buf []byte) (seq, rest []byte, needMore bool) {
	// ESC [ M <cb><cx><cy>: legacy X10 mouse, fixed 6 bytes total.
	if len(buf) >= 3 && buf[2] == 'M' {
		if len(buf) >= 6 {
			return buf[:6], buf[6:], false
		}
		return nil, buf, true
	}

	for i := 2; i < len(buf); i++ {
		c := buf[i]
		if c >= 0x40 && c <= 0x7e {
			return buf[:i+1], buf[i+1:], false
		}
	}
	return nil, buf, true
}

func peelOSC(buf []byte) (seq, rest []byte, needMore bool) {
	for i := 2; i < len(buf); i++ {
		switch buf[i] {
		case 0x07:
			return buf[:i+1], buf[i+1:], false
		case 0x1b:
			if i+1 < len(buf) && buf[i+1] == '\\' {
				return buf[:i+2], buf[i+2:], false
			}
			if i+1 >= len(buf) {
				return nil, buf, true
			}
		}
	}
	return nil, buf, true
}

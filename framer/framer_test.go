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

package framer

import (
	"bytes"
	"testing"
	"time"

	"github.com/fluxterm/fluxterm/scheduler"
)

func newTestFramer() (*Framer, *scheduler.Manual, *[][]byte) {
	m := scheduler.NewManual()
	var emitted [][]byte
	f := New(m, DefaultTimeout, func(seq []byte) {
		emitted = append(emitted, append([]byte(nil), seq...))
	})
	return f, m, &emitted
}

func TestPushCompleteSequenceEmitsExactlyOne(t *testing.T) {
	tests := []struct {
		name string
		seq  []byte
	}{
		{"csi-cursor-up", []byte("\x1b[A")},
		{"sgr-mouse", []byte("\x1b[<0;11;6M")},
		{"osc-bel", []byte("\x1b]0;title\x07")},
		{"osc-st", []byte("\x1b]0;title\x1b\\")},
		{"ss3", []byte("\x1bOP")},
		{"x10-mouse", []byte("\x1b[M !\"")},
		{"plain-char", []byte("a")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, _, _ := newTestFramer()
			out := f.Push(tc.seq)
			if len(out) != 1 || !bytes.Equal(out[0], tc.seq) {
				t.Fatalf("Push(%q) = %q, want [%q]", tc.seq, out, tc.seq)
			}
			if got := f.Flush(); got != nil {
				t.Fatalf("buffer not empty after complete push: %q", got)
			}
		})
	}
}

func TestPushChunkedMatchesWhole(t *testing.T) {
	whole := []byte("\x1b[<0;11;6M")
	chunks := [][]byte{{0x1b}, []byte("[<0;11"), []byte(";6M")}

	fWhole, _, emittedWhole := newTestFramer()
	fWhole.Push(whole)

	fChunked, _, emittedChunked := newTestFramer()
	for _, c := range chunks {
		fChunked.Push(c)
	}

	if len(*emittedWhole) != 1 || len(*emittedChunked) != 1 {
		t.Fatalf("expected one emission each, got whole=%v chunked=%v", *emittedWhole, *emittedChunked)
	}
	if !bytes.Equal((*emittedWhole)[0], (*emittedChunked)[0]) {
		t.Fatalf("chunked emission %q != whole emission %q", (*emittedChunked)[0], (*emittedWhole)[0])
	}
}

func TestNonEscapeCharacterEmitsImmediately(t *testing.T) {
	f, _, _ := newTestFramer()
	out := f.Push([]byte("x"))
	if len(out) != 1 || string(out[0]) != "x" {
		t.Fatalf("Push(x) = %q, want [x]", out)
	}
}

func TestMultiByteUTF8PeeledAsOneCharacter(t *testing.T) {
	f, _, _ := newTestFramer()
	// U+00E9 'é', 2-byte UTF-8 sequence.
	out := f.Push([]byte("\xc3\xa9"))
	if len(out) != 1 || len(out[0]) != 2 {
		t.Fatalf("Push(e-acute) = %q, want one 2-byte sequence", out)
	}
}

func TestBareEscapeFlushesOnTimeout(t *testing.T) {
	f, m, emitted := newTestFramer()
	out := f.Push([]byte{0x1b})
	if len(out) != 0 {
		t.Fatalf("bare ESC should not emit synchronously, got %q", out)
	}
	m.Advance(DefaultTimeout)
	if len(*emitted) != 1 || string((*emitted)[0]) != "\x1b" {
		t.Fatalf("emitted = %q, want one lone ESC", *emitted)
	}
}

func TestPushCancelsPendingTimeout(t *testing.T) {
	f, m, emitted := newTestFramer()
	f.Push([]byte{0x1b})
	f.Push([]byte("[A"))
	m.Advance(DefaultTimeout)
	if len(*emitted) != 1 || string((*emitted)[0]) != "\x1b[A" {
		t.Fatalf("emitted = %q, want completed CSI sequence only", *emitted)
	}
}

func TestEmptyPushOnEmptyBufferEmitsEmptySequence(t *testing.T) {
	f, _, _ := newTestFramer()
	out := f.Push(nil)
	if len(out) != 1 || len(out[0]) != 0 {
		t.Fatalf("Push(nil) = %v, want one empty sequence", out)
	}
}

func TestHighByteRewrittenAsMeta(t *testing.T) {
	f, _, _ := newTestFramer()
	out := f.Push([]byte{0xC1}) // 0x41 + 0x80
	if len(out) != 1 || !bytes.Equal(out[0], []byte{0x1b, 0x41}) {
		t.Fatalf("Push(0xC1) = %q, want ESC 'A'", out)
	}
}

func TestAmbiguousPrefixArmsTimeoutAndFlushes(t *testing.T) {
	f, m, emitted := newTestFramer()
	f.Push([]byte("\x1b["))
	if m.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1 after ambiguous CSI prefix", m.Pending())
	}
	m.Advance(DefaultTimeout)
	if len(*emitted) != 1 || string((*emitted)[0]) != "\x1b[" {
		t.Fatalf("emitted = %q, want flushed partial CSI", *emitted)
	}
}

func TestSequentialMixedInput(t *testing.T) {
	f, _, _ := newTestFramer()
	out := f.Push([]byte("abc\x1b[<35;20;5m"))
	want := []string{"a", "b", "c", "\x1b[<35;20;5m"}
	if len(out) != len(want) {
		t.Fatalf("Push emitted %d sequences, want %d: %q", len(out), len(want), out)
	}
	for i, w := range want {
		if string(out[i]) != w {
			t.Fatalf("out[%d] = %q, want %q", i, out[i], w)
		}
	}
	more := f.Push([]byte("def"))
	for i, w := range []string{"d", "e", "f"} {
		if string(more[i]) != w {
			t.Fatalf("more[%d] = %q, want %q", i, more[i], w)
		}
	}
}

func TestFlushReturnsBufferedPrefix(t *testing.T) {
	f, _, _ := newTestFramer()
	f.Push([]byte("\x1b[1"))
	got := f.Flush()
	if string(got) != "\x1b[1" {
		t.Fatalf("Flush() = %q, want partial buffer", got)
	}
	if f.Flush() != nil {
		t.Fatal("second Flush should be empty")
	}
}

func TestDestroyDropsBufferedState(t *testing.T) {
	f, m, _ := newTestFramer()
	f.Push([]byte("\x1b["))
	f.Destroy()
	if m.Pending() != 0 {
		t.Fatalf("Pending() = %d after Destroy, want 0", m.Pending())
	}
	if f.Flush() != nil {
		t.Fatal("buffer should be empty after Destroy")
	}
}

func TestRealSchedulerEventuallyFlushesBareEscape(t *testing.T) {
	emitted := make(chan []byte, 1)
	f := New(scheduler.Real(), 5*time.Millisecond, func(seq []byte) { emitted <- seq })
	f.Push([]byte{0x1b})
	select {
	case seq := <-emitted:
		if string(seq) != "\x1b" {
			t.Fatalf("emitted %q, want lone ESC", seq)
		}
	case <-time.After(time.Second):
		t.Fatal("framer never flushed bare ESC")
	}
}

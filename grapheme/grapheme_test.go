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

package grapheme

import (
	"testing"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/keys"
	"github.com/fluxterm/fluxterm/scheduler"
)

func kittyPress(t *testing.T, code int) fluxterm.ParsedKey {
	t.Helper()
	p := keys.New(true)
	seq := []byte("\x1b[" + itoa(code) + "u")
	pk, ok := p.Parse(seq)
	if !ok {
		t.Fatalf("failed to parse kitty codepoint %d", code)
	}
	return pk
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestFlagEmojiCoalescesIntoOneKeyEvent(t *testing.T) {
	m := scheduler.NewManual()
	var emitted []fluxterm.ParsedKey
	c := New(m, DefaultTimeout, func(pk fluxterm.ParsedKey) { emitted = append(emitted, pk) })

	c.Push(kittyPress(t, 0x1F1FA)) // regional indicator U
	c.Push(kittyPress(t, 0x1F1F8)) // regional indicator S
	m.Advance(DefaultTimeout)

	if len(emitted) != 1 {
		t.Fatalf("emitted %d events, want 1: %+v", len(emitted), emitted)
	}
	if emitted[0].Name != "\U0001F1FA\U0001F1F8" {
		t.Fatalf("Name = %q, want US flag cluster", emitted[0].Name)
	}
}

func TestNonCoalescableKeyFlushesBufferFirst(t *testing.T) {
	m := scheduler.NewManual()
	var emitted []fluxterm.ParsedKey
	c := New(m, DefaultTimeout, func(pk fluxterm.ParsedKey) { emitted = append(emitted, pk) })

	c.Push(kittyPress(t, 0x1F1FA))
	plain := kittyPress(t, 'a')
	c.Push(plain)

	if len(emitted) != 2 {
		t.Fatalf("emitted %d events, want 2 (flushed buffer + passthrough): %+v", len(emitted), emitted)
	}
	if emitted[1].Name != "a" {
		t.Fatalf("second emission = %+v, want passthrough 'a'", emitted[1])
	}
}

func TestCtrlModifiedKittyKeyBypassesCoalescing(t *testing.T) {
	m := scheduler.NewManual()
	var emitted []fluxterm.ParsedKey
	c := New(m, DefaultTimeout, func(pk fluxterm.ParsedKey) { emitted = append(emitted, pk) })

	pk := kittyPress(t, 0x1F1FA)
	pk.Ctrl = true
	c.Push(pk)

	if len(emitted) != 1 || emitted[0].Name != pk.Name {
		t.Fatalf("emitted = %+v, want immediate passthrough", emitted)
	}
	if m.Pending() != 0 {
		t.Fatal("no timer should have been armed for a ctrl-modified key")
	}
}

func TestRegionalIndicatorRunSplitsIntoPairs(t *testing.T) {
	m := scheduler.NewManual()
	var emitted []fluxterm.ParsedKey
	c := New(m, DefaultTimeout, func(pk fluxterm.ParsedKey) { emitted = append(emitted, pk) })

	// Three consecutive regional indicators: admission is greedy, but
	// flush must resolve to one pair plus one lone leftover.
	c.Push(kittyPress(t, 0x1F1FA))
	c.Push(kittyPress(t, 0x1F1F8))
	c.Push(kittyPress(t, 0x1F1E6))
	m.Advance(DefaultTimeout)

	if len(emitted) != 2 {
		t.Fatalf("emitted %d events, want 2 (one pair + one leftover): %+v", len(emitted), emitted)
	}
	if emitted[0].Name != "\U0001F1FA\U0001F1F8" {
		t.Fatalf("first cluster = %q, want US flag", emitted[0].Name)
	}
}

func TestDestroyDropsBufferedCodepoints(t *testing.T) {
	m := scheduler.NewManual()
	var emitted []fluxterm.ParsedKey
	c := New(m, DefaultTimeout, func(pk fluxterm.ParsedKey) { emitted = append(emitted, pk) })

	c.Push(kittyPress(t, 0x1F1FA))
	c.Destroy()
	m.Advance(DefaultTimeout)

	if len(emitted) != 0 {
		t.Fatalf("emitted %v after Destroy, want none", emitted)
	}
}

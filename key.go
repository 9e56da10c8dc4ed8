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

package fluxterm

import "fmt"

// EventType distinguishes a Kitty-protocol key event from its repeat
// and release variants. Legacy (raw) parsing only ever produces Press.
type EventType int

const (
	Press EventType = iota
	Repeat
	Release
)

func (t EventType) String() string {
	switch t {
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// KeySource records which parsing path produced a ParsedKey.
type KeySource int

const (
	SourceRaw KeySource = iota
	SourceKitty
)

func (s KeySource) String() string {
	if s == SourceKitty {
		return "kitty"
	}
	return "raw"
}

// ParsedKey is the decoded, immutable result of feeding one framed
// sequence to the keypress parser. Name is the canonical key
// identifier ("a", "return", "escape", "up", "f1", ... or a grapheme
// cluster string for a coalesced emoji).
type ParsedKey struct {
	Name     string
	Ctrl     bool
	Meta     bool // Alt/Option on most terminals
	Shift    bool
	Option   bool
	Super    bool
	Hyper    bool
	CapsLock bool
	NumLock  bool

	// Sequence is the canonical textual form of the key; Raw is the
	// exact byte string that produced this event.
	Sequence string
	Raw      []byte

	// Number is true when Name is a single numeric digit.
	Number bool

	EventType EventType
	Source    KeySource

	// Code and BaseCode are additional identifiers only populated by
	// the Kitty protocol path.
	Code     int
	BaseCode int
}

// mutableEvent is embedded by KeyEvent and PasteEvent to provide the
// shared, monotonic preventDefault/stopPropagation flags the dispatch
// protocol requires. A pointer receiver gives the interior-mutability
// semantics the design notes call for: listeners all observe and
// mutate the same underlying event, never a copy.
type mutableEvent struct {
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault flips defaultPrevented to true. It never clears it.
func (m *mutableEvent) PreventDefault() {
	m.defaultPrevented = true
}

// StopPropagation flips propagationStopped to true. It never clears it.
func (m *mutableEvent) StopPropagation() {
	m.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault has been called.
func (m *mutableEvent) DefaultPrevented() bool {
	return m.defaultPrevented
}

// PropagationStopped reports whether StopPropagation has been called.
func (m *mutableEvent) PropagationStopped() bool {
	return m.propagationStopped
}

// KeyEvent wraps a ParsedKey for delivery through the dispatcher.
type KeyEvent struct {
	mutableEvent
	Key ParsedKey
}

// NewKeyEvent constructs a KeyEvent with both flags clear.
func NewKeyEvent(k ParsedKey) *KeyEvent {
	return &KeyEvent{Key: k}
}

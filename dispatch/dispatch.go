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

// Package dispatch implements the two-tier listener registry:
// ordered global listeners, then ordered internal listeners, with
// per-event preventDefault/stopPropagation semantics mirroring the DOM
// event model. The registration-order fan-out shape, delivered here
// through plain function listeners rather than channels, is grounded
// on badu-term's eventDispatcher (other_examples'
// key-dispatcher.go), which is the closest thing in the retrieved
// corpus to a multi-consumer listener registry — tcell itself only
// has a single-consumer PostEvent/PollEvent queue.
package dispatch

import (
	"log/slog"

	"github.com/fluxterm/fluxterm"
)

// EventName identifies one of the four event channels the dispatcher
// maintains independently.
type EventName string

const (
	Keypress   EventName = "keypress"
	KeyRepeat  EventName = "keyrepeat"
	KeyRelease EventName = "keyrelease"
	Paste      EventName = "paste"
)

// KeyListener observes a KeyEvent.
type KeyListener func(*fluxterm.KeyEvent)

// PasteListener observes a PasteEvent.
type PasteListener func(*fluxterm.PasteEvent)

type registry struct {
	keyListeners   map[EventName][]KeyListener
	pasteListeners []PasteListener
}

func newRegistry() *registry {
	return &registry{keyListeners: make(map[EventName][]KeyListener)}
}

// Dispatcher routes KeyEvent and PasteEvent values to a global tier
// and an internal tier, in that order, honoring stopPropagation and
// preventDefault. It is not safe for concurrent use: spec.md §5
// assumes a single-threaded cooperative owner of dispatch.
type Dispatcher struct {
	global   *registry
	internal *registry
	logger   *slog.Logger
}

// New constructs a Dispatcher. A nil logger falls back to slog's
// default logger, matching codespacesh-codewire's own use of
// log/slog for structured diagnostics rather than a bespoke logging
// package.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{global: newRegistry(), internal: newRegistry(), logger: logger}
}

// RegisterGlobalKey appends a global-tier key listener for name.
func (d *Dispatcher) RegisterGlobalKey(name EventName, l KeyListener) {
	d.global.keyListeners[name] = append(d.global.keyListeners[name], l)
}

// RegisterInternalKey appends an internal-tier key listener for name,
// typically called by a focusable renderable when it gains focus.
func (d *Dispatcher) RegisterInternalKey(name EventName, l KeyListener) {
	d.internal.keyListeners[name] = append(d.internal.keyListeners[name], l)
}

// RegisterGlobalPaste appends a global-tier paste listener.
func (d *Dispatcher) RegisterGlobalPaste(l PasteListener) {
	d.global.pasteListeners = append(d.global.pasteListeners, l)
}

// RegisterInternalPaste appends an internal-tier paste listener.
func (d *Dispatcher) RegisterInternalPaste(l PasteListener) {
	d.internal.pasteListeners = append(d.internal.pasteListeners, l)
}

// Clear empties both tiers, matching destroy()'s "clears both tiers"
// contract.
func (d *Dispatcher) Clear() {
	d.global = newRegistry()
	d.internal = newRegistry()
}

// EmitKey dispatches ev under name and reports whether at least one
// listener existed in either tier.
func (d *Dispatcher) EmitKey(name EventName, ev *fluxterm.KeyEvent) bool {
	// Snapshot registries so in-listener registry mutation only takes
	// effect for subsequent dispatches, per spec.md §5.
	globalSnap := append([]KeyListener(nil), d.global.keyListeners[name]...)
	internalSnap := append([]KeyListener(nil), d.internal.keyListeners[name]...)

	for _, l := range globalSnap {
		d.invokeKey(l, ev, string(name), "global")
		if ev.PropagationStopped() {
			break
		}
	}

	if !ev.DefaultPrevented() && !ev.PropagationStopped() {
		for _, l := range internalSnap {
			d.invokeKey(l, ev, string(name), "internal")
			if ev.PropagationStopped() {
				break
			}
		}
	}

	return len(globalSnap) > 0 || len(internalSnap) > 0
}

// EmitPaste dispatches a paste event through both tiers with the same
// propagation rules as EmitKey.
func (d *Dispatcher) EmitPaste(ev *fluxterm.PasteEvent) bool {
	globalSnap := append([]PasteListener(nil), d.global.pasteListeners...)
	internalSnap := append([]PasteListener(nil), d.internal.pasteListeners...)

	for _, l := range globalSnap {
		d.invokePaste(l, ev, "global")
		if ev.PropagationStopped() {
			break
		}
	}

	if !ev.DefaultPrevented() && !ev.PropagationStopped() {
		for _, l := range internalSnap {
			d.invokePaste(l, ev, "internal")
			if ev.PropagationStopped() {
				break
			}
		}
	}

	return len(globalSnap) > 0 || len(internalSnap) > 0
}

// ProcessPaste wraps an already-accumulated paste buffer in a
// PasteEvent (stripping ANSI sequences) and dispatches it.
func (d *Dispatcher) ProcessPaste(text string) bool {
	return d.EmitPaste(fluxterm.NewPasteEvent(text))
}

func (d *Dispatcher) invokeKey(l KeyListener, ev *fluxterm.KeyEvent, name, tier string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("listener panic", "event", name, "tier", tier, "recover", r)
		}
	}()
	l(ev)
}

func (d *Dispatcher) invokePaste(l PasteListener, ev *fluxterm.PasteEvent, tier string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("listener panic", "event", "paste", "tier", tier, "recover", r)
		}
	}()
	l(ev)
}

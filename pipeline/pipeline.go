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

// Package pipeline wires the framer, mouse parser, keypress parser,
// grapheme coalescer, and dispatcher into a single io.Writer, mirroring
// the way the teacher's inputParser.scan fuses framing and parsing
// into one loop, except each stage here is its own independently
// testable package rather than one fused state machine.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/dispatch"
	"github.com/fluxterm/fluxterm/framer"
	"github.com/fluxterm/fluxterm/grapheme"
	"github.com/fluxterm/fluxterm/keys"
	"github.com/fluxterm/fluxterm/mouseparse"
	"github.com/fluxterm/fluxterm/scheduler"
)

// MouseListener observes a parsed mouse event. Mouse events bypass the
// dispatcher's key/paste tiers entirely, per spec.md §6's "separate
// channel" requirement.
type MouseListener func(fluxterm.MouseEvent)

// Core owns one framer, keypress parser, grapheme coalescer, and
// dispatcher, routes mouse tokens through mouseparse, and presents
// them as a single io.Writer suitable for sitting downstream of any
// raw-mode stdin reader the host chooses to use.
//
// Core is not goroutine-safe: a host that reads from a TTY on one
// goroutine and writes into Core is the only supported shape. This
// matches spec.md §5's single-owner cooperative model.
type Core struct {
	framer     *framer.Framer
	keys       *keys.Parser
	coalescer  *grapheme.Coalescer
	dispatcher *dispatch.Dispatcher

	onMouse MouseListener
	logger  *slog.Logger
}

// Options configures a new Core.
type Options struct {
	Sched           scheduler.Scheduler
	FramerTimeout   time.Duration
	CoalesceTimeout time.Duration
	Kitty           bool
	Dispatcher      *dispatch.Dispatcher
	OnMouse         MouseListener
	Logger          *slog.Logger
}

// New constructs a Core from opts, defaulting Sched to a real
// wall-clock scheduler, Dispatcher to a fresh dispatch.New(opts.Logger), and
// OnMouse to a no-op when unset.
func New(opts Options) *Core {
	if opts.Sched == nil {
		opts.Sched = scheduler.Real()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = dispatch.New(opts.Logger)
	}
	if opts.OnMouse == nil {
		opts.OnMouse = func(fluxterm.MouseEvent) {}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Core{
		keys:       keys.New(opts.Kitty),
		dispatcher: opts.Dispatcher,
		onMouse:    opts.OnMouse,
		logger:     opts.Logger,
	}

	c.coalescer = grapheme.New(opts.Sched, opts.CoalesceTimeout, c.emitKey)
	c.framer = framer.New(opts.Sched, opts.FramerTimeout, c.handleFrame)
	return c
}

// Write feeds p into the framer, synchronously dispatching every
// event that results from fully-framed sequences within p. It never
// blocks and always reports len(p), nil, matching spec.md §5's
// synchronous push/emit contract.
func (c *Core) Write(p []byte) (int, error) {
	// Every framed sequence reaches handleFrame through the framer's
	// onEmit callback, so the returned slice is not handled again here.
	c.framer.Push(p)
	return len(p), nil
}

// Flush forces out any buffered partial sequence, as if its timeout
// had fired immediately.
func (c *Core) Flush() {
	if seq := c.framer.Flush(); seq != nil {
		c.handleFrame(seq)
	}
	c.coalescer.Flush()
}

// Destroy releases the framer's and coalescer's pending timers and
// clears the dispatcher's listener tiers.
func (c *Core) Destroy() {
	c.framer.Destroy()
	c.coalescer.Destroy()
	c.dispatcher.Clear()
}

// Dispatcher exposes the underlying dispatcher so hosts can register
// listeners.
func (c *Core) Dispatcher() *dispatch.Dispatcher {
	return c.dispatcher
}

func (c *Core) handleFrame(seq []byte) {
	if ev, _, ok := mouseparse.ParseWithConsumed(seq); ok {
		c.onMouse(ev)
		return
	}

	pk, ok := c.keys.Parse(seq)
	if !ok {
		return
	}

	if pk.Source == fluxterm.SourceKitty && pk.EventType == fluxterm.Press {
		c.coalescer.Push(pk)
		return
	}
	c.emitKey(pk)
}

func (c *Core) emitKey(pk fluxterm.ParsedKey) {
	name := dispatch.Keypress
	switch pk.EventType {
	case fluxterm.Repeat:
		name = dispatch.KeyRepeat
	case fluxterm.Release:
		name = dispatch.KeyRelease
	}
	c.dispatcher.EmitKey(name, fluxterm.NewKeyEvent(pk))
}

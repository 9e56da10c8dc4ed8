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

// Package grapheme coalesces the per-codepoint key events the Kitty
// keyboard protocol emits for a multi-codepoint emoji into a single
// key event whose name is the assembled grapheme cluster. Unicode
// segmentation is delegated to github.com/rivo/uniseg, the UAX #29
// implementation also used by charmbracelet/bubbletea's own input
// parser (see other_examples' bubbletea parse.go, which calls
// uniseg.FirstGraphemeCluster for the same reason).
package grapheme

import (
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/scheduler"
)

// DefaultTimeout is the single-shot coalesce flush delay (10ms per the
// external configuration surface).
const DefaultTimeout = 10 * time.Millisecond

const (
	regionalIndicatorStart = 0x1F1E6
	regionalIndicatorEnd   = 0x1F1FF
	emojiRangeStart        = 0x1F300
	emojiRangeEnd          = 0x1FAFF
	miscSymbolsStart       = 0x2600
	miscSymbolsEnd         = 0x27BF
	tagBase                = 0x1F3F4
	zwj                    = 0x200D
	variationSelectorStart = 0xFE00
	variationSelectorEnd   = 0xFE0F
	emojiModifierStart     = 0x1F3FB
	emojiModifierEnd       = 0x1F3FF
	combiningKeycap        = 0x20E3
	tagCharStart           = 0xE0020
	tagCharEnd             = 0xE007F
)

type buffered struct {
	cp  rune
	raw []byte
	key fluxterm.ParsedKey
}

// Coalescer buffers admissible Kitty codepoints and flushes them, on
// a non-coalescable event or on timeout, as one key event per
// resulting grapheme cluster.
type Coalescer struct {
	sched   scheduler.Scheduler
	timeout time.Duration
	onEmit  func(fluxterm.ParsedKey)
	buf     []buffered
	cancel  scheduler.Cancel
}

// New constructs a Coalescer. onEmit receives every key event this
// component ultimately produces, whether coalesced, passed through
// unmodified, or (on segmentation failure) split back into individual
// codepoints.
func New(sched scheduler.Scheduler, timeout time.Duration, onEmit func(fluxterm.ParsedKey)) *Coalescer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coalescer{sched: sched, timeout: timeout, onEmit: onEmit}
}

// Push feeds one Kitty key press through the coalescer. Non-Kitty
// events, non-press event types, and any modifier other than
// shift/option bypass coalescing entirely and are flushed-then-passed
// through immediately, per the admission test in spec.md §4.4.
func (c *Coalescer) Push(pk fluxterm.ParsedKey) {
	if pk.Source != fluxterm.SourceKitty || pk.EventType != fluxterm.Press ||
		pk.Ctrl || pk.Meta || pk.Super || pk.Hyper {
		c.Flush()
		c.onEmit(pk)
		return
	}

	r, size := utf8.DecodeRuneInString(pk.Name)
	if r == utf8.RuneError || size != len(pk.Name) {
		c.Flush()
		c.onEmit(pk)
		return
	}

	admitted := false
	if len(c.buf) == 0 {
		admitted = canStartCluster(r)
	} else {
		prev := c.buf[len(c.buf)-1].cp
		admitted = isExtender(r) || prev == zwj
	}

	if !admitted {
		c.Flush()
		c.onEmit(pk)
		return
	}

	c.buf = append(c.buf, buffered{cp: r, raw: pk.Raw, key: pk})
	c.armTimer()
}

// Flush runs the segmenter over whatever is buffered and emits one
// key event per resulting grapheme cluster. It is a no-op if nothing
// is buffered.
func (c *Coalescer) Flush() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if len(c.buf) == 0 {
		return
	}
	buf := c.buf
	c.buf = nil
	c.segmentAndEmit(buf)
}

// Destroy cancels any pending timer and drops buffered codepoints
// without emitting them.
func (c *Coalescer) Destroy() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.buf = nil
}

func (c *Coalescer) armTimer() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.sched == nil {
		return
	}
	c.cancel = c.sched.After(c.timeout, func() {
		c.cancel = nil
		c.Flush()
	})
}

func (c *Coalescer) segmentAndEmit(buf []buffered) {
	// Open question resolution (spec.md §9): admission buffers runs
	// of regional indicators greedily, but they are only meaningful
	// in pairs. Split such runs into pairs before handing them to the
	// segmenter rather than rejecting admission past two.
	allRegional := true
	for _, b := range buf {
		if !isRegionalIndicator(b.cp) {
			allRegional = false
			break
		}
	}
	if allRegional && len(buf) > 2 {
		for i := 0; i < len(buf); i += 2 {
			end := i + 2
			if end > len(buf) {
				end = len(buf)
			}
			c.emitSegmentationFailureSafe(buf[i:end])
		}
		return
	}

	runes := make([]rune, len(buf))
	for i, b := range buf {
		runes[i] = b.cp
	}
	data := []byte(string(runes))
	state := -1
	idx := 0
	for len(data) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeCluster(data, state)
		state = newState
		n := utf8.RuneCount(cluster)
		if n == 0 || len(rest) >= len(data) {
			// Segmentation made no progress: failure mode, emit what
			// remains individually.
			for _, b := range buf[idx:] {
				c.onEmit(b.key)
			}
			return
		}
		end := idx + n
		if end > len(buf) {
			end = len(buf)
		}
		c.emitCluster(buf[idx:end], string(cluster))
		idx = end
		data = rest
	}
}

// emitSegmentationFailureSafe runs the real segmenter over a (small,
// already-paired) group, falling back to per-codepoint emission only
// if that group itself fails to segment as one cluster.
func (c *Coalescer) emitSegmentationFailureSafe(group []buffered) {
	runes := make([]rune, len(group))
	for i, b := range group {
		runes[i] = b.cp
	}
	data := []byte(string(runes))
	cluster, rest, _, _ := uniseg.FirstGraphemeCluster(data, -1)
	if len(rest) != 0 {
		for _, b := range group {
			c.onEmit(b.key)
		}
		return
	}
	c.emitCluster(group, string(cluster))
}

func (c *Coalescer) emitCluster(group []buffered, clusterStr string) {
	var raw []byte
	for _, b := range group {
		raw = append(raw, b.raw...)
	}
	pk := group[0].key
	pk.Name = clusterStr
	pk.Sequence = clusterStr
	pk.Raw = raw
	c.onEmit(pk)
}

func isRegionalIndicator(r rune) bool {
	return r >= regionalIndicatorStart && r <= regionalIndicatorEnd
}

func canStartCluster(r rune) bool {
	switch {
	case isRegionalIndicator(r):
		return true
	case r >= emojiRangeStart && r <= emojiRangeEnd:
		return true
	case r >= miscSymbolsStart && r <= miscSymbolsEnd:
		return true
	case r == '#' || r == '*' || (r >= '0' && r <= '9'):
		return true
	case r == tagBase:
		return true
	}
	return false
}

func isExtender(r rune) bool {
	switch {
	case r == zwj:
		return true
	case r >= variationSelectorStart && r <= variationSelectorEnd:
		return true
	case r >= emojiModifierStart && r <= emojiModifierEnd:
		return true
	case isRegionalIndicator(r):
		return true
	case r == combiningKeycap:
		return true
	case r >= tagCharStart && r <= tagCharEnd:
		return true
	}
	return false
}

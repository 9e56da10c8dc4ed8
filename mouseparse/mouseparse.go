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

// Package mouseparse decodes SGR and legacy X10 mouse reports into
// fluxterm.MouseEvent, grounded on tcell's inputParser.handleMouse SGR
// button-bit decode (the same btn&0xC3-style masking, re-expressed
// against spec.md's {down,up,move,scroll} event model instead of
// tcell's ButtonMask bitmask).
package mouseparse

import (
	"strconv"
	"strings"

	"github.com/fluxterm/fluxterm"
)

// ParseWithConsumed recognises an SGR or X10 mouse token at the start
// of seq. It returns ok=false if seq does not begin with a mouse
// token; consumed is the exact byte length of the recognised prefix,
// letting the caller continue parsing subsequent tokens from the same
// read.
func ParseWithConsumed(seq []byte) (ev fluxterm.MouseEvent, consumed int, ok bool) {
	if len(seq) >= 3 && seq[0] == 0x1b && seq[1] == '[' && seq[2] == '<' {
		return parseSGR(seq)
	}
	if len(seq) >= 6 && seq[0] == 0x1b && seq[1] == '[' && seq[2] == 'M' {
		return parseX10(seq[:6])
	}
	return fluxterm.MouseEvent{}, 0, false
}

func parseSGR(seq []byte) (fluxterm.MouseEvent, int, bool) {
	end := -1
	for i := 3; i < len(seq); i++ {
		if seq[i] == 'M' || seq[i] == 'm' {
			end = i
			break
		}
	}
	if end < 0 {
		return fluxterm.MouseEvent{}, 0, false
	}
	final := seq[end]
	params := string(seq[3:end])
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return fluxterm.MouseEvent{}, 0, false
	}
	b, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return fluxterm.MouseEvent{}, 0, false
	}

	base := b & 0b11
	scrollFlag := b&64 != 0
	motionFlag := b&32 != 0

	ev := fluxterm.MouseEvent{
		Button: base,
		X:      x - 1,
		Y:      y - 1,
		Modifiers: fluxterm.MouseModifiers{
			Shift: b&4 != 0,
			Alt:   b&8 != 0,
			Ctrl:  b&16 != 0,
		},
	}

	switch {
	case scrollFlag:
		ev.Type = fluxterm.MouseScroll
		dir := fluxterm.ScrollDirection(base)
		ev.Scroll = &dir
	case motionFlag && base == 3:
		ev.Type = fluxterm.MouseMove
	case final == 'M':
		ev.Type = fluxterm.MouseDown
	default:
		ev.Type = fluxterm.MouseUp
	}

	return ev, end + 1, true
}

func parseX10(seq []byte) (fluxterm.MouseEvent, int, bool) {
	cb := int(seq[3]) - 32
	cx := int(seq[4]) - 32
	cy := int(seq[5]) - 32

	base := cb & 0b11
	scrollFlag := cb&64 != 0

	ev := fluxterm.MouseEvent{
		Button: base,
		X:      cx - 1,
		Y:      cy - 1,
		Modifiers: fluxterm.MouseModifiers{
			Shift: cb&4 != 0,
			Alt:   cb&8 != 0,
			Ctrl:  cb&16 != 0,
		},
	}

	switch {
	case scrollFlag:
		ev.Type = fluxterm.MouseScroll
		dir := fluxterm.ScrollDirection(base)
		ev.Scroll = &dir
	case base == 3:
		ev.Type = fluxterm.MouseUp
	default:
		ev.Type = fluxterm.MouseDown
	}

	return ev, 6, true
}

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

// Package keys decodes one framed sequence into a fluxterm.ParsedKey,
// supporting both the legacy xterm encoding and the Kitty keyboard
// protocol. The final-byte and SS3 lookup tables are grounded on
// tcell's csiAllKeys/ss3Keys/csiUKeys tables, trimmed to the subset of
// keys spec.md names and re-expressed with the string-based key names
// ParsedKey.Name requires instead of tcell's Key enum.
package keys

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fluxterm/fluxterm"
)

// Parser decodes framed byte sequences into ParsedKey records. Kitty
// enables recognition of the CSI-u protocol; it is off by default
// since a terminal must opt in with DECSET 2017x before Kitty
// sequences are unambiguous.
type Parser struct {
	Kitty bool
}

// New constructs a Parser. kitty mirrors the host's negotiated Kitty
// progressive-enhancement state.
func New(kitty bool) *Parser {
	return &Parser{Kitty: kitty}
}

// Parse decodes seq. It returns ok=false for mouse tokens (SGR/X10,
// which belong to the mouse parser) and for anything it does not
// recognise.
func (p *Parser) Parse(seq []byte) (fluxterm.ParsedKey, bool) {
	if isMouseToken(seq) {
		return fluxterm.ParsedKey{}, false
	}
	if p.Kitty {
		if pk, ok := parseKitty(seq); ok {
			return pk, true
		}
	}
	return parseRaw(seq)
}

// isMouseToken reports whether seq looks like an SGR or X10 mouse
// report, which the keypress parser must refuse so the mouse parser
// gets a turn instead.
func isMouseToken(seq []byte) bool {
	if len(seq) >= 3 && seq[0] == 0x1b && seq[1] == '[' && seq[2] == '<' {
		return true
	}
	if len(seq) == 6 && seq[0] == 0x1b && seq[1] == '[' && seq[2] == 'M' {
		return true
	}
	return false
}

var ss3Keys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
	'P': "f1",
	'Q': "f2",
	'R': "f3",
	'S': "f4",
}

var csiLetterKeys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
	'Z': "backtab",
}

var tildeKeys = map[int]string{
	1: "home", 2: "insert", 3: "delete", 4: "end",
	5: "pageup", 6: "pagedown", 7: "home", 8: "end",
	11: "f1", 12: "f2", 13: "f3", 14: "f4", 15: "f5",
	17: "f6", 18: "f7", 19: "f8", 20: "f9", 21: "f10",
	23: "f11", 24: "f12", 25: "f13", 26: "f14",
	28: "f15", 29: "f16", 31: "f17", 32: "f18", 33: "f19", 34: "f20",
	200: "paste-start", 201: "paste-end",
}

// parseRaw implements spec.md §4.2's always-on raw mode.
func parseRaw(seq []byte) (fluxterm.ParsedKey, bool) {
	if len(seq) == 0 {
		return fluxterm.ParsedKey{}, false
	}

	if seq[0] != 0x1b {
		return parsePrintableOrControl(seq)
	}

	if len(seq) == 1 {
		return finish(fluxterm.ParsedKey{Name: "escape"}, seq), true
	}

	switch seq[1] {
	case '[':
		return parseCSIRaw(seq)
	case 'O':
		return parseSS3Raw(seq)
	}

	// ESC <char>: meta variant of whatever the inner byte(s) decode to.
	if inner, ok := parsePrintableOrControl(seq[1:]); ok {
		inner.Meta = true
		return finish(inner, seq), true
	}
	return fluxterm.ParsedKey{}, false
}

func parsePrintableOrControl(seq []byte) (fluxterm.ParsedKey, bool) {
	if len(seq) == 0 {
		return fluxterm.ParsedKey{}, false
	}
	b := seq[0]

	switch {
	case b == '\r':
		return finish(fluxterm.ParsedKey{Name: "return"}, seq), true
	case b == '\n':
		return finish(fluxterm.ParsedKey{Name: "linefeed"}, seq), true
	case b == '\t':
		return finish(fluxterm.ParsedKey{Name: "tab"}, seq), true
	case b == '\b' || b == 0x7f:
		return finish(fluxterm.ParsedKey{Name: "backspace"}, seq), true
	case b == ' ':
		return finish(fluxterm.ParsedKey{Name: "space"}, seq), true
	case b == 0x1b && len(seq) == 1:
		return finish(fluxterm.ParsedKey{Name: "escape"}, seq), true
	case b >= 1 && b <= 26:
		// Ctrl+<letter> encodes as the control byte 1..26.
		name := string(rune('a' + b - 1))
		return finish(fluxterm.ParsedKey{Name: name, Ctrl: true}, seq), true
	case b < 0x20:
		// Other control bytes without a dedicated name: still surface
		// as ctrl-modified so no input is silently dropped.
		return finish(fluxterm.ParsedKey{Name: string(rune(b + 0x40)), Ctrl: true}, seq), true
	}

	r, size := utf8.DecodeRune(seq)
	if r == utf8.RuneError && size <= 1 {
		return fluxterm.ParsedKey{}, false
	}
	name := string(r)
	return finish(fluxterm.ParsedKey{Name: name, Number: unicode.IsDigit(r)}, seq), true
}

func parseSS3Raw(seq []byte) (fluxterm.ParsedKey, bool) {
	if len(seq) < 3 {
		return fluxterm.ParsedKey{}, false
	}
	name, ok := ss3Keys[seq[2]]
	if !ok {
		return fluxterm.ParsedKey{}, false
	}
	return finish(fluxterm.ParsedKey{Name: name}, seq), true
}

func parseCSIRaw(seq []byte) (fluxterm.ParsedKey, bool) {
	if len(seq) < 3 {
		return fluxterm.ParsedKey{}, false
	}
	final := seq[len(seq)-1]
	params := string(seq[2 : len(seq)-1])

	if name, ok := csiLetterKeys[final]; ok {
		pk := fluxterm.ParsedKey{Name: name}
		applyLegacyModifier(&pk, secondParam(params))
		return finish(pk, seq), true
	}

	if final == '~' {
		parts := strings.Split(params, ";")
		code, err := strconv.Atoi(parts[0])
		if err != nil {
			return fluxterm.ParsedKey{}, false
		}
		name, ok := tildeKeys[code]
		if !ok {
			return fluxterm.ParsedKey{}, false
		}
		pk := fluxterm.ParsedKey{Name: name}
		if len(parts) > 1 {
			applyLegacyModifier(&pk, parts[1])
		}
		return finish(pk, seq), true
	}

	return fluxterm.ParsedKey{}, false
}

func secondParam(params string) string {
	parts := strings.Split(params, ";")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// applyLegacyModifier decodes the xterm "modifyOtherKeys" convention:
// reported value is 1+bitmask, bit0=shift, bit1=alt, bit2=ctrl.
func applyLegacyModifier(pk *fluxterm.ParsedKey, raw string) {
	if raw == "" {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return
	}
	bits := n - 1
	pk.Shift = bits&1 != 0
	pk.Meta = bits&2 != 0
	pk.Ctrl = bits&4 != 0
}

// parseKitty implements spec.md §4.2's Kitty keyboard protocol path:
// ESC [ codepoint[:alternate] [;modifiers[:event-type]] [;text] u
func parseKitty(seq []byte) (fluxterm.ParsedKey, bool) {
	if len(seq) < 3 || seq[0] != 0x1b || seq[1] != '[' || seq[len(seq)-1] != 'u' {
		return fluxterm.ParsedKey{}, false
	}
	body := string(seq[2 : len(seq)-1])
	if body == "" {
		return fluxterm.ParsedKey{}, false
	}
	fields := strings.Split(body, ";")

	codeField := strings.Split(fields[0], ":")
	code, err := strconv.Atoi(codeField[0])
	if err != nil {
		return fluxterm.ParsedKey{}, false
	}

	pk := fluxterm.ParsedKey{
		Source:    fluxterm.SourceKitty,
		EventType: fluxterm.Press,
		Code:      code,
		BaseCode:  code,
	}

	if len(fields) > 1 {
		modField := strings.Split(fields[1], ":")
		modVal, _ := strconv.Atoi(modField[0])
		applyKittyModifier(&pk, modVal)
		if len(modField) > 1 {
			switch modField[1] {
			case "2":
				pk.EventType = fluxterm.Repeat
			case "3":
				pk.EventType = fluxterm.Release
			}
		}
	}

	name, number := kittyCodeName(code)
	pk.Name = name
	pk.Number = number
	return finish(pk, seq), true
}

// applyKittyModifier decodes the protocol's bitmask: reported value is
// 1+bitmask, with shift=1, alt=2, ctrl=4, super=8, hyper=16, meta=32,
// capsLock=64, numLock=128.
func applyKittyModifier(pk *fluxterm.ParsedKey, n int) {
	if n <= 0 {
		return
	}
	bits := n - 1
	pk.Shift = bits&1 != 0
	if bits&2 != 0 {
		pk.Meta = true
	}
	pk.Ctrl = bits&4 != 0
	pk.Super = bits&8 != 0
	pk.Hyper = bits&16 != 0
	if bits&32 != 0 {
		pk.Meta = true
	}
	pk.CapsLock = bits&64 != 0
	pk.NumLock = bits&128 != 0
}

var kittyNamedCodes = map[int]string{
	27: "escape", 9: "tab", 13: "return", 127: "backspace",
	57358: "capslock", 57359: "scrolllock", 57360: "numlock",
	57361: "print", 57362: "pause", 57363: "menu",
	57417: "left", 57418: "right", 57419: "up", 57420: "down",
	57421: "pageup", 57422: "pagedown", 57423: "home", 57424: "end",
	57425: "insert", 57426: "delete",
}

// kittyCodeName turns a Kitty functional/unicode codepoint into a
// canonical key name, and reports whether it is a single digit.
func kittyCodeName(code int) (string, bool) {
	if name, ok := kittyNamedCodes[code]; ok {
		return name, false
	}
	if code >= 57376 && code <= 57398 {
		return "f" + strconv.Itoa(13+(code-57376)), false
	}
	r := rune(code)
	if r < 0 || !utf8.ValidRune(r) {
		return "", false
	}
	return string(r), unicode.IsDigit(r)
}

func finish(pk fluxterm.ParsedKey, seq []byte) fluxterm.ParsedKey {
	pk.Raw = append([]byte(nil), seq...)
	if pk.Sequence == "" {
		pk.Sequence = pk.Name
	}
	return pk
}

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

// Package keybind merges default and custom keybinding lists and
// builds a canonical-key lookup map. The dispatcher does not consult
// this map itself.
package keybind

import (
	"fmt"
	"strings"

	"github.com/fluxterm/fluxterm"
)

// Merge overwrites entries in defaults with any custom entry sharing
// the same canonical key, preserving the defaults' relative order and
// appending any custom entries that don't match an existing one.
func Merge(defaults, custom []fluxterm.KeyBinding) []fluxterm.KeyBinding {
	out := make([]fluxterm.KeyBinding, len(defaults))
	copy(out, defaults)

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[fluxterm.CanonicalKey(b)] = i
	}

	for _, b := range custom {
		key := fluxterm.CanonicalKey(b)
		if i, ok := index[key]; ok {
			out[i] = b
			continue
		}
		index[key] = len(out)
		out = append(out, b)
	}
	return out
}

// ParseChord parses a "+"-joined key chord such as "ctrl+shift+q" into
// a KeyBinding (Action left empty for the caller to fill in). Every
// token but the last must name a recognised modifier (ctrl/control,
// shift, meta/alt, super/cmd, option/opt); the last token becomes the
// binding's Name. An unrecognised modifier token returns an error
// wrapping fluxterm.ErrUnknownBinding naming the offending token, per
// spec.md §7's requirement that the option parsers throw an explicit
// error naming the unknown value.
func ParseChord(spec string) (fluxterm.KeyBinding, error) {
	parts := strings.Split(spec, "+")
	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return fluxterm.KeyBinding{}, fmt.Errorf("%w: %s", fluxterm.ErrUnknownBinding, spec)
	}

	var b fluxterm.KeyBinding
	b.Name = name
	for _, tok := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "ctrl", "control":
			b.Ctrl = true
		case "shift":
			b.Shift = true
		case "meta", "alt":
			b.Meta = true
		case "super", "cmd":
			b.Super = true
		case "option", "opt":
			b.Option = true
		default:
			return fluxterm.KeyBinding{}, fmt.Errorf("%w: %s", fluxterm.ErrUnknownBinding, tok)
		}
	}
	return b, nil
}

// Alias renames name to target: a binding matching name also gets
// registered, in BuildMap, under the canonical key of the
// alias-renamed binding. The original entry is never removed.
type Alias struct {
	From string
	To   string
}

// BuildMap inserts each binding under its own canonical key, and
// additionally under the canonical key of any alias-renamed version
// of that binding (e.g. alias enter->return means a binding named
// "enter" is also registered under the canonical key for "return").
func BuildMap(bindings []fluxterm.KeyBinding, aliases []Alias) map[string]fluxterm.KeyBinding {
	m := make(map[string]fluxterm.KeyBinding, len(bindings))
	for _, b := range bindings {
		m[fluxterm.CanonicalKey(b)] = b
	}

	for _, b := range bindings {
		for _, a := range aliases {
			if b.Name != a.From {
				continue
			}
			renamed := b
			renamed.Name = a.To
			m[fluxterm.CanonicalKey(renamed)] = b
		}
	}
	return m
}

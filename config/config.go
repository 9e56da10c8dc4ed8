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

// Package config loads the TOML configuration surface described in
// spec.md §6: framer/coalescer timeouts, the Kitty enable flag,
// scroll-accelerator tuning, viewport culler tuning, table renderer
// options, and custom keybindings. The load-with-defaults-then-decode
// shape is grounded on codespacesh-codewire's internal/config package.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/keybind"
	"github.com/fluxterm/fluxterm/scroll"
	"github.com/fluxterm/fluxterm/table"
	"github.com/fluxterm/fluxterm/viewport"
)

// InputConfig configures the framer, coalescer, and Kitty support.
type InputConfig struct {
	FramerTimeoutMS   int  `toml:"framer_timeout_ms"`
	CoalesceTimeoutMS int  `toml:"coalesce_timeout_ms"`
	Kitty             bool `toml:"kitty"`
}

// ScrollConfig configures the scroll accelerator.
type ScrollConfig struct {
	A              float64 `toml:"a"`
	Tau            float64 `toml:"tau"`
	MaxMultiplier  float64 `toml:"max_multiplier"`
	HistorySize    int     `toml:"history_size"`
	StreakTimeoutMS int    `toml:"streak_timeout_ms"`
}

// ViewportConfig configures the culler.
type ViewportConfig struct {
	Padding        int `toml:"padding"`
	MinTriggerSize int `toml:"min_trigger_size"`
}

// TableConfig configures Markdown table rendering.
type TableConfig struct {
	Style           string `toml:"style"`
	MaxColumnWidth  int    `toml:"max_column_width"`
	MinColumnWidth  int    `toml:"min_column_width"`
	CellPadding     int    `toml:"cell_padding"`
}

// BindingEntry is one TOML-declared keybinding. Either Chord (a
// "+"-joined shorthand such as "ctrl+shift+q") or the explicit
// modifier booleans may be used; Chord takes precedence when set.
type BindingEntry struct {
	Chord  string `toml:"chord,omitempty"`
	Name   string `toml:"name,omitempty"`
	Ctrl   bool   `toml:"ctrl,omitempty"`
	Shift  bool   `toml:"shift,omitempty"`
	Meta   bool   `toml:"meta,omitempty"`
	Super  bool   `toml:"super,omitempty"`
	Option bool   `toml:"option,omitempty"`
	Action string `toml:"action"`
}

// Config is the top-level configuration loaded from fluxterm.toml.
type Config struct {
	Input    InputConfig    `toml:"input"`
	Scroll   ScrollConfig   `toml:"scroll"`
	Viewport ViewportConfig `toml:"viewport"`
	Table    TableConfig    `toml:"table"`
	Bindings []BindingEntry `toml:"bindings"`
}

// Default returns the configuration matching the library's documented
// defaults (spec.md §6).
func Default() *Config {
	return &Config{
		Input: InputConfig{
			FramerTimeoutMS:   10,
			CoalesceTimeoutMS: 10,
			Kitty:             true,
		},
		Scroll: ScrollConfig{
			A:               scroll.DefaultA,
			Tau:             scroll.DefaultTau,
			MaxMultiplier:   scroll.DefaultMaxMultiplier,
			HistorySize:     scroll.DefaultHistorySize,
			StreakTimeoutMS: int(scroll.DefaultStreakTimeout / time.Millisecond),
		},
		Viewport: ViewportConfig{
			Padding:        viewport.DefaultPadding,
			MinTriggerSize: viewport.DefaultMinTriggerSize,
		},
		Table: TableConfig{
			Style:          "unicode",
			MaxColumnWidth: table.DefaultMaxColumnWidth,
			MinColumnWidth: table.DefaultMinColumnWidth,
			CellPadding:    table.DefaultCellPadding,
		},
	}
}

// Load reads path and decodes it over the library defaults. A missing
// file is not an error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// KeyBindings converts the configured binding entries into
// fluxterm.KeyBinding values ready for keybind.Merge/keybind.BuildMap.
// A Chord entry is parsed with keybind.ParseChord; an unrecognised
// modifier token in it surfaces as an error wrapping
// fluxterm.ErrUnknownBinding, per spec.md §7.
func (c *Config) KeyBindings() ([]fluxterm.KeyBinding, error) {
	out := make([]fluxterm.KeyBinding, len(c.Bindings))
	for i, b := range c.Bindings {
		if b.Chord != "" {
			parsed, err := keybind.ParseChord(b.Chord)
			if err != nil {
				return nil, fmt.Errorf("bindings[%d] (chord %q): %w", i, b.Chord, err)
			}
			parsed.Action = b.Action
			out[i] = parsed
			continue
		}
		out[i] = fluxterm.KeyBinding{
			Name:   b.Name,
			Ctrl:   b.Ctrl,
			Shift:  b.Shift,
			Meta:   b.Meta,
			Super:  b.Super,
			Option: b.Option,
			Action: b.Action,
		}
	}
	return out, nil
}

// FramerTimeout returns the configured framer timeout as a Duration.
func (c *Config) FramerTimeout() time.Duration {
	return time.Duration(c.Input.FramerTimeoutMS) * time.Millisecond
}

// CoalesceTimeout returns the configured coalesce timeout as a
// Duration.
func (c *Config) CoalesceTimeout() time.Duration {
	return time.Duration(c.Input.CoalesceTimeoutMS) * time.Millisecond
}

// TableStyle converts the configured style name to a table.Style,
// defaulting to table.Unicode for an unrecognised value.
func (c *Config) TableStyle() table.Style {
	switch c.Table.Style {
	case "ascii":
		return table.ASCII
	case "compact":
		return table.Compact
	default:
		return table.Unicode
	}
}

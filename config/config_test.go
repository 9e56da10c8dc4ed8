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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.FramerTimeoutMS != 10 {
		t.Fatalf("FramerTimeoutMS = %d, want default 10", cfg.Input.FramerTimeoutMS)
	}
	if !cfg.Input.Kitty {
		t.Fatal("Kitty should default to true")
	}
}

func TestLoadDecodesOverridesAndKeepsUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fluxterm.toml")
	contents := `
[input]
kitty = false

[[bindings]]
name = "q"
ctrl = true
action = "quit"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.Kitty {
		t.Fatal("kitty should have been overridden to false")
	}
	if cfg.Input.FramerTimeoutMS != 10 {
		t.Fatalf("FramerTimeoutMS = %d, want default 10 to survive merge", cfg.Input.FramerTimeoutMS)
	}
	if len(cfg.Bindings) != 1 || cfg.Bindings[0].Action != "quit" {
		t.Fatalf("bindings = %+v", cfg.Bindings)
	}
}

func TestLoadInvalidTOMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not=[valid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestKeyBindingsConvertsEntries(t *testing.T) {
	cfg := Default()
	cfg.Bindings = []BindingEntry{{Name: "q", Ctrl: true, Action: "quit"}}

	kb, err := cfg.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings: %v", err)
	}
	if len(kb) != 1 || kb[0].Name != "q" || !kb[0].Ctrl || kb[0].Action != "quit" {
		t.Fatalf("KeyBindings() = %+v", kb)
	}
}

func TestKeyBindingsParsesChordShorthand(t *testing.T) {
	cfg := Default()
	cfg.Bindings = []BindingEntry{{Chord: "ctrl+shift+q", Action: "quit"}}

	kb, err := cfg.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings: %v", err)
	}
	if len(kb) != 1 || kb[0].Name != "q" || !kb[0].Ctrl || !kb[0].Shift || kb[0].Action != "quit" {
		t.Fatalf("KeyBindings() = %+v", kb)
	}
}

func TestKeyBindingsRejectsUnknownChordModifier(t *testing.T) {
	cfg := Default()
	cfg.Bindings = []BindingEntry{{Chord: "hyperz+q", Action: "quit"}}

	if _, err := cfg.KeyBindings(); err == nil {
		t.Fatal("expected an error for an unrecognised chord modifier")
	}
}

func TestTableStyleDefaultsToUnicodeForUnknownValue(t *testing.T) {
	cfg := Default()
	cfg.Table.Style = "nonsense"
	if got := cfg.TableStyle(); got.String() != "unicode" {
		t.Fatalf("TableStyle() = %v, want unicode", got)
	}
}

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

package keybind

import (
	"errors"
	"testing"

	"github.com/fluxterm/fluxterm"
)

func TestMergeOverwritesByCanonicalKey(t *testing.T) {
	defaults := []fluxterm.KeyBinding{
		{Name: "tab", Action: "focus-next"},
		{Name: "escape", Action: "cancel"},
	}
	custom := []fluxterm.KeyBinding{
		{Name: "tab", Action: "custom-focus-next"},
	}

	merged := Merge(defaults, custom)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[0].Action != "custom-focus-next" {
		t.Fatalf("tab action = %q, want override", merged[0].Action)
	}
	if merged[1].Action != "cancel" {
		t.Fatalf("escape action = %q, want unchanged", merged[1].Action)
	}
}

func TestMergeAppendsNonOverlappingCustomEntries(t *testing.T) {
	defaults := []fluxterm.KeyBinding{{Name: "tab", Action: "focus-next"}}
	custom := []fluxterm.KeyBinding{{Name: "q", Ctrl: true, Action: "quit"}}

	merged := Merge(defaults, custom)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[1].Action != "quit" {
		t.Fatalf("appended entry = %+v, want quit", merged[1])
	}
}

func TestBuildMapRegistersOriginalAndAliasedCanonicalKeys(t *testing.T) {
	bindings := []fluxterm.KeyBinding{{Name: "enter", Action: "submit"}}
	aliases := []Alias{{From: "enter", To: "return"}}

	m := BuildMap(bindings, aliases)

	original := fluxterm.CanonicalKey(fluxterm.KeyBinding{Name: "enter", Action: "submit"})
	aliased := fluxterm.CanonicalKey(fluxterm.KeyBinding{Name: "return", Action: "submit"})

	if _, ok := m[original]; !ok {
		t.Fatal("original canonical key missing")
	}
	if _, ok := m[aliased]; !ok {
		t.Fatal("aliased canonical key missing")
	}
	if len(m) != 2 {
		t.Fatalf("len(m) = %d, want 2", len(m))
	}
}

func TestBuildMapWithNoAliasesRegistersOnlyOriginal(t *testing.T) {
	bindings := []fluxterm.KeyBinding{{Name: "a", Action: "noop"}}
	m := BuildMap(bindings, nil)
	if len(m) != 1 {
		t.Fatalf("len(m) = %d, want 1", len(m))
	}
}

func TestParseChordSetsModifiersAndName(t *testing.T) {
	b, err := ParseChord("ctrl+shift+q")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if b.Name != "q" || !b.Ctrl || !b.Shift || b.Meta || b.Super || b.Option {
		t.Fatalf("ParseChord(ctrl+shift+q) = %+v", b)
	}
}

func TestParseChordWithNoModifiers(t *testing.T) {
	b, err := ParseChord("escape")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if b.Name != "escape" || b.Ctrl || b.Shift || b.Meta || b.Super || b.Option {
		t.Fatalf("ParseChord(escape) = %+v", b)
	}
}

func TestParseChordRejectsUnknownModifier(t *testing.T) {
	_, err := ParseChord("hyperz+q")
	if err == nil {
		t.Fatal("expected an error for an unrecognised modifier token")
	}
	if !errors.Is(err, fluxterm.ErrUnknownBinding) {
		t.Fatalf("err = %v, want wrapped fluxterm.ErrUnknownBinding", err)
	}
}

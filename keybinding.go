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

// KeyBinding associates a canonical key chord with an action name. The
// Action field is opaque to fluxterm; hosts use it as a lookup key
// into their own command table.
type KeyBinding struct {
	Name   string
	Ctrl   bool
	Shift  bool
	Meta   bool
	Super  bool
	Option bool // participates in the binding, not in CanonicalKey
	Action string
}

// CanonicalKey returns the identity string used for binding equality
// and map lookup: "<name>:<c>:<s>:<m>:<S>" with each modifier
// collapsed to 0 or 1. Option deliberately does not participate.
func CanonicalKey(b KeyBinding) string {
	return fmt.Sprintf("%s:%d:%d:%d:%d", b.Name,
		boolBit(b.Ctrl), boolBit(b.Shift), boolBit(b.Meta), boolBit(b.Super))
}

func boolBit(v bool) int {
	if v {
		return 1
	}
	return 0
}

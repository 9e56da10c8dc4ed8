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

// Package focus implements the DOM-like pre-order walker over a
// fluxterm.Renderable tree, filtered by a focusability predicate, with
// wrap-around forward/backward navigation.
package focus

import "github.com/fluxterm/fluxterm"

func accept(n fluxterm.Renderable) bool {
	return n != nil && n.Focusable() && n.Visible()
}

// nextRaw returns the next node in pre-order: the first child if any,
// else the nearest ancestor-or-self's next sibling, else nil.
func nextRaw(n fluxterm.Renderable) fluxterm.Renderable {
	if n == nil {
		return nil
	}
	if children := n.Children(); len(children) > 0 {
		return children[0]
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if sib := nextSibling(cur); sib != nil {
			return sib
		}
	}
	return nil
}

// prevRaw returns the previous node in pre-order: the deepest last
// descendant of the previous sibling if any, else the parent.
func prevRaw(n fluxterm.Renderable) fluxterm.Renderable {
	if n == nil {
		return nil
	}
	if sib := prevSibling(n); sib != nil {
		return deepestLastDescendant(sib)
	}
	return n.Parent()
}

func nextSibling(n fluxterm.Renderable) fluxterm.Renderable {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	for i, s := range siblings {
		if s == n {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}

func prevSibling(n fluxterm.Renderable) fluxterm.Renderable {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	for i, s := range siblings {
		if s == n {
			if i > 0 {
				return siblings[i-1]
			}
			return nil
		}
	}
	return nil
}

func deepestLastDescendant(n fluxterm.Renderable) fluxterm.Renderable {
	for {
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		n = children[len(children)-1]
	}
}

// FirstAccepted returns the first accepted node in pre-order starting
// from (and including) root, or nil if none is accepted.
func FirstAccepted(root fluxterm.Renderable) fluxterm.Renderable {
	if root == nil {
		return nil
	}
	if accept(root) {
		return root
	}
	for n := nextRaw(root); n != nil; n = nextRaw(n) {
		if accept(n) {
			return n
		}
	}
	return nil
}

// LastAccepted returns the last accepted node in pre-order reachable
// from root, or nil if none is accepted.
func LastAccepted(root fluxterm.Renderable) fluxterm.Renderable {
	if root == nil {
		return nil
	}
	last := deepestLastDescendant(root)
	if accept(last) {
		return last
	}
	for n := prevRaw(last); n != nil; n = prevRaw(n) {
		if accept(n) {
			return n
		}
		if n == root {
			break
		}
	}
	if accept(root) {
		return root
	}
	return nil
}

// NextAccepted walks forward from current, skipping rejected nodes,
// returning the first accepted node or nil at tree end.
func NextAccepted(current fluxterm.Renderable) fluxterm.Renderable {
	for n := nextRaw(current); n != nil; n = nextRaw(n) {
		if accept(n) {
			return n
		}
	}
	return nil
}

// PrevAccepted walks backward from current, skipping rejected nodes,
// returning the first accepted node or nil at tree start.
func PrevAccepted(current fluxterm.Renderable) fluxterm.Renderable {
	for n := prevRaw(current); n != nil; n = prevRaw(n) {
		if accept(n) {
			return n
		}
	}
	return nil
}

// Walker owns the focus cursor and applies focus()/blur() on advance.
// It does not listen for key events: no Tab / Shift+Tab binding is
// registered here, and Next/Prev run only when the host calls them.
type Walker struct {
	root    fluxterm.Renderable
	current fluxterm.Renderable
}

// NewWalker constructs a Walker rooted at root with no current focus.
func NewWalker(root fluxterm.Renderable) *Walker {
	return &Walker{root: root}
}

// Current returns the currently focused node, or nil.
func (w *Walker) Current() fluxterm.Renderable {
	return w.current
}

// SetCurrent sets the cursor directly without invoking focus()/blur();
// used to seed the walker from host-driven focus changes.
func (w *Walker) SetCurrent(n fluxterm.Renderable) {
	w.current = n
}

// Next advances focus to the next accepted node, wrapping to
// FirstAccepted when the walk reaches the end of the tree. It blurs
// the outgoing node and focuses the incoming one.
func (w *Walker) Next() fluxterm.Renderable {
	var next fluxterm.Renderable
	if w.current == nil {
		next = FirstAccepted(w.root)
	} else {
		next = NextAccepted(w.current)
		if next == nil {
			next = FirstAccepted(w.root)
		}
	}
	w.advance(next)
	return next
}

// Prev advances focus to the previous accepted node, wrapping to
// LastAccepted when the walk reaches the start of the tree.
func (w *Walker) Prev() fluxterm.Renderable {
	var prev fluxterm.Renderable
	if w.current == nil {
		prev = LastAccepted(w.root)
	} else {
		prev = PrevAccepted(w.current)
		if prev == nil {
			prev = LastAccepted(w.root)
		}
	}
	w.advance(prev)
	return prev
}

func (w *Walker) advance(next fluxterm.Renderable) {
	if next == nil {
		return
	}
	if w.current != nil {
		w.current.Blur()
	}
	next.Focus()
	w.current = next
}

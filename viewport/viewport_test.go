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

package viewport

import "testing"

func makeColumn(n int) []Object {
	objs := make([]Object, n)
	for i := 0; i < n; i++ {
		objs[i] = Object{Rect: Rect{X: 0, Y: i * 2, Width: 10, Height: 1}, ZIndex: n - i}
	}
	return objs
}

func TestBelowMinTriggerSizeReturnsInputUnchanged(t *testing.T) {
	objs := makeColumn(5)
	got := GetObjectsInViewport(Rect{X: 0, Y: 0, Width: 10, Height: 10}, objs, Column, 0, 16)
	if len(got) != len(objs) {
		t.Fatalf("len(got) = %d, want %d (unchanged)", len(got), len(objs))
	}
}

func TestReturnsOverlappingObjectsSortedByZIndex(t *testing.T) {
	objs := makeColumn(30)
	viewport := Rect{X: 0, Y: 10, Width: 10, Height: 4}

	got := GetObjectsInViewport(viewport, objs, Column, 0, 16)
	if len(got) == 0 {
		t.Fatal("expected overlapping objects")
	}
	for i := range got {
		if got[i].Rect.Y+got[i].Rect.Height <= viewport.Y || got[i].Rect.Y >= viewport.Y+viewport.Height {
			t.Fatalf("object %+v does not overlap viewport %+v", got[i], viewport)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ZIndex > got[i].ZIndex {
			t.Fatalf("results not sorted by ascending ZIndex: %v", got)
		}
	}
}

func TestPaddingExpandsMatchWindow(t *testing.T) {
	objs := makeColumn(30)
	viewport := Rect{X: 0, Y: 20, Width: 10, Height: 2}

	withoutPadding := GetObjectsInViewport(viewport, objs, Column, 0, 16)
	withPadding := GetObjectsInViewport(viewport, objs, Column, 10, 16)

	if len(withPadding) <= len(withoutPadding) {
		t.Fatalf("padding did not expand result: %d vs %d", len(withPadding), len(withoutPadding))
	}
}

func TestCrossAxisMismatchExcludesObject(t *testing.T) {
	objs := []Object{
		{Rect: Rect{X: 0, Y: 0, Width: 5, Height: 1}, ZIndex: 0},
	}
	for i := 1; i < 20; i++ {
		objs = append(objs, Object{Rect: Rect{X: 100, Y: i, Width: 5, Height: 1}, ZIndex: i})
	}

	viewport := Rect{X: 0, Y: 0, Width: 5, Height: 20}
	got := GetObjectsInViewport(viewport, objs, Column, 0, 16)

	for _, o := range got {
		if o.Rect.X != 0 {
			t.Fatalf("object at x=100 should have been excluded by cross-axis check: %+v", o)
		}
	}
}

func TestNoOverlapReturnsEmpty(t *testing.T) {
	objs := makeColumn(30)
	viewport := Rect{X: 0, Y: 1000, Width: 10, Height: 4}

	got := GetObjectsInViewport(viewport, objs, Column, 0, 16)
	if len(got) != 0 {
		t.Fatalf("got %d objects, want 0", len(got))
	}
}

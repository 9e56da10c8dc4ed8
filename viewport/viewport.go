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

// Package viewport implements a binary-search-accelerated overlap
// query over a list of objects pre-sorted by their primary-axis
// start, used to cull off-screen renderables before a paint pass.
package viewport

import "sort"

// Direction selects which axis is primary. Column layouts scroll
// vertically, so y is primary; row layouts scroll horizontally, so x
// is primary.
type Direction int

const (
	Column Direction = iota
	Row
)

// DefaultMaxLookBehind bounds how many consecutive non-overlapping
// objects the leftward expansion will tolerate before giving up. This
// accommodates many small objects sitting between a wide object and
// the viewport.
const DefaultMaxLookBehind = 50

// DefaultPadding and DefaultMinTriggerSize are the culler's configured
// defaults per the external interface.
const (
	DefaultPadding        = 10
	DefaultMinTriggerSize = 16
)

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Object is a positioned, paintable item subject to culling.
type Object struct {
	Rect
	ZIndex int
}

func (r Rect) primaryStart(dir Direction) int {
	if dir == Column {
		return r.Y
	}
	return r.X
}

func (r Rect) primaryEnd(dir Direction) int {
	if dir == Column {
		return r.Y + r.Height
	}
	return r.X + r.Width
}

func (r Rect) crossStart(dir Direction) int {
	if dir == Column {
		return r.X
	}
	return r.Y
}

func (r Rect) crossEnd(dir Direction) int {
	if dir == Column {
		return r.X + r.Width
	}
	return r.Y + r.Height
}

func overlaps1D(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// GetObjectsInViewport returns the objects whose rect overlaps
// viewport expanded by padding on all sides, sorted by ascending
// ZIndex. objects shorter than minTriggerSize are returned unchanged
// (culling isn't worth the binary search overhead below that size).
// objects must already be sorted by primary-axis start; behavior on
// unsorted input is undefined.
func GetObjectsInViewport(viewport Rect, objects []Object, direction Direction, padding, minTriggerSize int) []Object {
	if len(objects) < minTriggerSize {
		return objects
	}

	expanded := Rect{
		X:      viewport.X - padding,
		Y:      viewport.Y - padding,
		Width:  viewport.Width + 2*padding,
		Height: viewport.Height + 2*padding,
	}
	primaryStart := expanded.primaryStart(direction)
	primaryEnd := expanded.primaryEnd(direction)

	pivot := sort.Search(len(objects), func(i int) bool {
		return objects[i].primaryEnd(direction) > primaryStart
	})
	if pivot == len(objects) {
		return nil
	}

	lo := pivot
	misses := 0
	for lo > 0 {
		candidate := objects[lo-1]
		if overlaps1D(candidate.primaryStart(direction), candidate.primaryEnd(direction), primaryStart, primaryEnd) {
			lo--
			misses = 0
			continue
		}
		misses++
		if misses > DefaultMaxLookBehind {
			break
		}
		lo--
	}

	var result []Object
	for i := lo; i < len(objects); i++ {
		o := objects[i]
		if o.primaryStart(direction) >= primaryEnd {
			break
		}
		if !overlaps1D(o.primaryStart(direction), o.primaryEnd(direction), primaryStart, primaryEnd) {
			continue
		}
		if !overlaps1D(o.crossStart(direction), o.crossEnd(direction), expanded.crossStart(direction), expanded.crossEnd(direction)) {
			continue
		}
		result = append(result, o)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ZIndex < result[j].ZIndex
	})
	return result
}

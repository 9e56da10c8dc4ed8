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

// Package table detects, parses, and renders Markdown pipe tables,
// using mattn/go-runewidth for CJK/emoji-aware column sizing (the
// same library the teacher's cell model uses for glyph width).
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style selects a rendering style.
type Style int

const (
	Unicode Style = iota
	ASCII
	Compact
)

func (s Style) String() string {
	switch s {
	case ASCII:
		return "ascii"
	case Compact:
		return "compact"
	default:
		return "unicode"
	}
}

// Alignment is a column's alignment as declared by its delimiter row.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

const (
	DefaultMaxColumnWidth = 50
	DefaultMinColumnWidth = 3
	DefaultCellPadding    = 1
)

// Table is a parsed Markdown table.
type Table struct {
	Header  []string
	Aligns  []Alignment
	Rows    [][]string
	Widths  []int
}

func isDelimiterRow(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return strings.ContainsRune(line, '-')
}

func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// FindTables scans lines for contiguous runs containing '|' that
// include at least one delimiter row, and returns the [start, end)
// line ranges of each candidate that qualifies as a table. Lines
// inside a fenced code block (delimited by lines starting with ```)
// are skipped entirely, per spec.md §4.10's detection precondition.
func FindTables(lines []string) [][2]int {
	var spans [][2]int
	start := -1
	hasDelim := false
	inFence := false

	flush := func(end int) {
		if start >= 0 && hasDelim {
			spans = append(spans, [2]int{start, end})
		}
		start = -1
		hasDelim = false
	}

	for i, line := range lines {
		if isFenceDelimiter(line) {
			flush(i)
			inFence = !inFence
			continue
		}
		if inFence {
			flush(i)
			continue
		}
		if strings.Contains(line, "|") {
			if start < 0 {
				start = i
			}
			if isDelimiterRow(line) {
				hasDelim = true
			}
			continue
		}
		flush(i)
	}
	flush(len(lines))
	return spans
}

func splitRow(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseAlignment(cell string) Alignment {
	cell = strings.TrimSpace(cell)
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Parse parses lines (a span previously returned by FindTables) into
// a Table. The second line of lines must be the delimiter row.
func Parse(lines []string) Table {
	var t Table
	if len(lines) == 0 {
		return t
	}

	t.Header = splitRow(lines[0])

	delimIdx := 1
	if delimIdx < len(lines) && isDelimiterRow(lines[delimIdx]) {
		delimCells := splitRow(lines[delimIdx])
		t.Aligns = make([]Alignment, len(delimCells))
		for i, c := range delimCells {
			t.Aligns[i] = parseAlignment(c)
		}
		lines = append(lines[:delimIdx], lines[delimIdx+1:]...)
	}

	for _, line := range lines[1:] {
		t.Rows = append(t.Rows, splitRow(line))
	}

	t.Widths = computeWidths(t)
	return t
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func computeWidths(t Table) []int {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		if w := displayWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < DefaultMinColumnWidth {
			widths[i] = DefaultMinColumnWidth
		}
		if widths[i] > DefaultMaxColumnWidth {
			widths[i] = DefaultMaxColumnWidth
		}
	}
	return widths
}

func truncate(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteRune('…')
	return b.String()
}

func padCell(s string, width int, align Alignment) string {
	s = truncate(s, width)
	gap := width - displayWidth(s)
	if gap < 0 {
		gap = 0
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		right := gap - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func (t Table) align(i int) Alignment {
	if i < len(t.Aligns) {
		return t.Aligns[i]
	}
	return AlignLeft
}

// Render renders t in the given style, with cellPadding spaces of
// padding inside each cell border.
func Render(t Table, style Style, cellPadding int) string {
	var b strings.Builder

	pad := strings.Repeat(" ", cellPadding)
	renderRow := func(cells []string, vrule string) string {
		var row strings.Builder
		row.WriteString(vrule)
		for i, w := range t.Widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			row.WriteString(pad)
			row.WriteString(padCell(cell, w, t.align(i)))
			row.WriteString(pad)
			row.WriteString(vrule)
		}
		return row.String()
	}

	switch style {
	case ASCII:
		b.WriteString(horizontalRule(t.Widths, cellPadding, "+", "-"))
		b.WriteString("\n")
		b.WriteString(renderRow(t.Header, "|"))
		b.WriteString("\n")
		b.WriteString(horizontalRule(t.Widths, cellPadding, "+", "-"))
		b.WriteString("\n")
		for _, row := range t.Rows {
			b.WriteString(renderRow(row, "|"))
			b.WriteString("\n")
		}
		b.WriteString(horizontalRule(t.Widths, cellPadding, "+", "-"))
	case Compact:
		b.WriteString(renderRow(t.Header, " "))
		b.WriteString("\n")
		b.WriteString(horizontalRule(t.Widths, cellPadding, " ", "─"))
		for _, row := range t.Rows {
			b.WriteString("\n")
			b.WriteString(renderRow(row, " "))
		}
	default: // Unicode
		b.WriteString(horizontalRule(t.Widths, cellPadding, "┌", "─", "┬", "┐"))
		b.WriteString("\n")
		b.WriteString(renderRow(t.Header, "│"))
		b.WriteString("\n")
		b.WriteString(horizontalRule(t.Widths, cellPadding, "├", "─", "┼", "┤"))
		b.WriteString("\n")
		for i, row := range t.Rows {
			b.WriteString(renderRow(row, "│"))
			if i < len(t.Rows)-1 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(horizontalRule(t.Widths, cellPadding, "└", "─", "┴", "┘"))
	}
	return b.String()
}

func horizontalRule(widths []int, cellPadding int, corners ...string) string {
	left, fill := corners[0], corners[1]
	mid, right := left, left
	if len(corners) >= 4 {
		mid, right = corners[2], corners[3]
	}

	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat(fill, w+2*cellPadding))
		if i < len(widths)-1 {
			b.WriteString(mid)
		}
	}
	b.WriteString(right)
	return b.String()
}

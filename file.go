// Copyright 2026 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package logfsm

import (
	"fmt"
)

// Pos is a byte offset in the parser input.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// Position describes an arbitrary input position including the input name,
// line, and column location.
//
type Position struct {
	Filename string
	Offset   int // byte offset, starting at 0
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// lineTable records the offset of the first byte of each line seen so far.
//
type lineTable struct {
	name  string
	lines []Pos // 0-based line/Pos information
}

func newLineTable(name string) lineTable {
	return lineTable{name: name, lines: []Pos{0}}
}

// addLine adds a new line starting at pos. Positions not past the start of
// the last known line are ignored.
//
func (t *lineTable) addLine(pos Pos) {
	if l := len(t.lines); l > 0 && t.lines[l-1] >= pos {
		return
	}
	t.lines = append(t.lines, pos)
}

// position returns the 1-based line and column for a given pos. Invalid
// positions have no line information.
//
func (t *lineTable) position(pos Pos) Position {
	if !pos.IsValid() {
		return Position{Filename: t.name, Offset: int(pos)}
	}
	i, j := 0, len(t.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(t.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	if i == 0 {
		return Position{Filename: t.name, Offset: int(pos)}
	}
	return Position{t.name, int(pos), i, int(pos - t.lines[i-1] + 1)}
}

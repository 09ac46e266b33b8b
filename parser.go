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
	"errors"
	"fmt"
	"unicode/utf8"
)

// A Parser turns a stream of characters into records, one character at a
// time. It drives the automaton (see Transition) and its interpreter (see VM)
// and keeps track of input positions for error reporting.
//
// Errors are never fatal to a Parser. The first error on a line causes the
// whole line to be skipped; the parser resynchronizes at the next line
// terminator. Unbalanced token stacks are the exception: they are reported
// but the record is still emitted with all complete key/value pairs.
//
// A Parser is not safe for concurrent use.
//
type Parser struct {
	opts  *options
	lines lineTable
	ps    ParseState
	vm    VM
	rec   *Record
	off   Pos  // offset of the next character
	data  bool // the current line holds characters other than '\n'
	bad   bool // the current line is skipped
	done  bool // attributes have been stored for the current line
}

// NewParser returns a new parser, ready to be fed the first character of its
// input.
//
func NewParser(opts ...Option) *Parser {
	p := &Parser{opts: newOptions(opts)}
	p.Reset()
	return p
}

// Reset discards any parsing state, including position information.
//
func (p *Parser) Reset() {
	p.lines = newLineTable(p.opts.name)
	p.ps = InitialState()
	p.off = 0
	p.resetLine()
}

func (p *Parser) resetLine() {
	p.vm.Reset()
	p.rec = NewRecord()
	p.data, p.bad, p.done = false, false, false
}

// State returns the current state of the automaton.
//
func (p *Parser) State() ParseState {
	return p.ps
}

// Pos returns the position of the next character.
//
func (p *Parser) Pos() Pos {
	return p.off
}

// Position converts pos to a line:column position. Only positions of
// characters that have already been fed can be converted.
//
func (p *Parser) Position(pos Pos) Position {
	return p.lines.position(pos)
}

// Feed processes the next input character. It returns the completed record
// when r terminates a valid line, and a non-nil error of type *Error when
// the character causes a parse error.
//
func (p *Parser) Feed(r rune) (*Record, error) {
	pos := p.off
	p.advance(utf8.RuneLen(r))

	prev := p.ps.State
	next, ok := Transition(prev, r)
	p.ps = next

	var err error
	if !ok {
		err = p.fail(pos, fmt.Errorf("%w %#U in state %v", ErrUnexpectedInput, r, prev))
	} else if !p.bad {
		if xerr := p.vm.Execute(p.rec, next, r); xerr != nil {
			err = p.errorAt(pos, xerr)
			if !errors.Is(xerr, ErrUnbalancedTokens) {
				err = p.fail(pos, xerr)
			}
		}
		if next.Op == FinalizeAttributes {
			p.done = true
		}
	}

	if r != '\n' {
		p.data = true
		return nil, err
	}
	p.lines.addLine(p.off)
	rec, lerr := p.endLine(pos)
	if err == nil {
		err = lerr
	}
	return rec, err
}

// Flush must be called at the end of the input. A line that was not
// terminated is discarded and reported with an ErrUnterminatedLine error.
// The parser is then ready to process a new line.
//
func (p *Parser) Flush() error {
	if !p.data {
		return nil
	}
	bad := p.bad
	p.resetLine()
	p.ps = InitialState()
	if bad {
		return nil
	}
	p.opts.logger.Debug("dropping unterminated line", "pos", p.Position(p.off-1))
	return p.errorAt(p.off, ErrUnterminatedLine)
}

// endLine completes the current line, terminated at pos.
//
func (p *Parser) endLine(pos Pos) (*Record, error) {
	rec, data, bad, done := p.rec, p.data, p.bad, p.done
	p.resetLine()
	switch {
	case done && !bad:
		return rec, nil
	case bad:
		p.opts.logger.Debug("skipped line", "pos", p.Position(pos))
	case data:
		return nil, p.errorAt(pos, ErrIncompleteLine)
	}
	return nil, nil
}

// fail reports err at pos and marks the current line as skipped. Errors on a
// line that is already skipped are not reported.
//
func (p *Parser) fail(pos Pos, err error) error {
	if p.bad {
		return nil
	}
	p.bad = true
	p.vm.Reset()
	e := p.errorAt(pos, err)
	p.opts.logger.Debug("parse error", "pos", e.Pos, "error", err)
	return e
}

// reject discards n bytes of input that cannot be fed to the automaton. The
// current line is skipped and err reported unless the line already failed.
//
func (p *Parser) reject(n int, err error) error {
	pos := p.off
	p.advance(n)
	p.data = true
	return p.fail(pos, err)
}

func (p *Parser) errorAt(pos Pos, err error) *Error {
	return &Error{Pos: p.lines.position(pos), Err: err}
}

// advance moves the input position n bytes forward. Invalid runes count as a
// single byte.
//
func (p *Parser) advance(n int) {
	if n < 1 {
		n = 1
	}
	p.off += Pos(n)
}

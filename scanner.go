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
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// queue is a FIFO queue.
//
type queue struct {
	items []item
	head  int
	tail  int
	count int
}

type item struct {
	rec *Record
	err error
}

func (q *queue) push(rec *Record, err error) {
	if q.head == q.tail && q.count > 0 {
		items := make([]item, len(q.items)*2)
		copy(items, q.items[q.head:])
		copy(items[len(q.items)-q.head:], q.items[:q.head])
		q.head = 0
		q.tail = len(q.items)
		q.items = items
	}
	q.items[q.tail] = item{rec, err}
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
}

// pop pops the first item from the queue. Callers must check that q.count > 0 beforehand.
//
func (q *queue) pop() (*Record, error) {
	i := q.head
	q.head = (q.head + 1) % len(q.items)
	q.count--
	it := q.items[i]
	q.items[i] = item{}
	return it.rec, it.err
}

// A Scanner reads records from an io.Reader.
//
// Records and errors are returned by Next in input order. Characters are
// only read from the underlying reader as needed to produce the next result.
//
type Scanner struct {
	queue
	p   *Parser
	r   io.RuneReader
	eof bool
}

// NewScanner returns a new Scanner reading from r. If r does not implement
// io.RuneReader, it is wrapped in a bufio.Reader.
//
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Scanner{
		// initial q size must be an exponent of 2
		queue: queue{items: make([]item, 2)},
		p:     NewParser(opts...),
		r:     rr,
	}
}

// Next returns the next record or error until the end of input where it
// returns io.EOF.
//
// Errors of type *Error are not fatal and the caller can keep calling Next.
// I/O errors from the underlying reader are reported once, wrapped with
// ErrIO, after which Next only returns io.EOF.
//
// Invalid UTF-8 sequences, NUL characters and BOMs past the beginning of the
// input are reported as errors and the line holding them is skipped, like any
// other parse error. A BOM at the beginning of the input is simply ignored.
//
func (s *Scanner) Next() (*Record, error) {
	for s.count == 0 {
		if s.eof {
			return nil, io.EOF
		}
		s.step()
	}
	return s.pop()
}

// Position converts pos to a line:column position.
//
func (s *Scanner) Position(pos Pos) Position {
	return s.p.Position(pos)
}

func (s *Scanner) step() {
	pos := s.p.Pos()
	r, sz, err := s.r.ReadRune()
	if err != nil {
		s.eof = true
		if err != io.EOF {
			s.push(nil, s.p.errorAt(pos, fmt.Errorf("%w: %w", ErrIO, err)))
			return
		}
		if err := s.p.Flush(); err != nil {
			s.push(nil, err)
		}
		return
	}

	const BOM = 0xfeff
	var rec *Record
	switch {
	case r == utf8.RuneError && sz == 1:
		err = s.p.reject(1, ErrInvalidEncoding)
	case r == 0:
		err = s.p.reject(1, ErrNUL)
	case r == BOM && pos == 0:
		s.p.advance(sz)
	case r == BOM:
		err = s.p.reject(sz, ErrBOM)
	default:
		rec, err = s.p.Feed(r)
	}
	if err != nil {
		s.push(nil, err)
	}
	if rec != nil {
		s.push(rec, nil)
	}
}

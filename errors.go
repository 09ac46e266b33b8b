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
)

// Errors reported by the parser. Positioned errors returned by Parser and
// Scanner wrap one of these and can be matched with errors.Is.
//
var (
	ErrUnexpectedInput    = errors.New("unexpected input")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrUnbalancedTokens   = errors.New("unbalanced token stack")
	ErrUnterminatedLine   = errors.New("unterminated line")
	ErrIncompleteLine     = errors.New("line has no attributes")
	ErrInvalidEncoding    = errors.New("invalid UTF-8 encoding")
	ErrNUL                = errors.New("invalid NUL character")
	ErrBOM                = errors.New("invalid BOM in the middle of the input")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrIO                 = errors.New("I/O error")
)

// Error is an error positioned in the input.
//
type Error struct {
	Pos Position
	Err error
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %v", e.Pos, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// IsFatal returns true if err prevents any further parsing of the input.
//
func IsFatal(err error) bool {
	return errors.Is(err, ErrIO)
}

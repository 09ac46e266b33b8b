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
	"io"
	"strings"
)

// Parse reads all of r and returns the records of all valid lines, in input
// order.
//
// Non-fatal errors are passed to the ErrorHandler option; they do not stop
// parsing. The returned error is non-nil only for I/O errors, in which case
// the records parsed so far are returned along with it.
//
func Parse(r io.Reader, opts ...Option) ([]Record, error) {
	s := NewScanner(r, opts...)
	var recs []Record
	for {
		rec, err := s.Next()
		switch {
		case err == io.EOF:
			return recs, nil
		case IsFatal(err):
			return recs, err
		case err != nil:
			s.p.opts.errorHandler(err)
		default:
			recs = append(recs, *rec)
		}
	}
}

// ParseString parses the records in s. See Parse.
//
func ParseString(s string, opts ...Option) ([]Record, error) {
	return Parse(strings.NewReader(s), opts...)
}

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
	"maps"
	"slices"
	"strconv"
	"strings"
)

// NoTimestamp is the timestamp of a record whose timestamp has not been set.
//
const NoTimestamp int64 = -1

// Record is one parsed log line.
//
type Record struct {
	Timestamp  int64
	Attributes map[string]string
}

// NewRecord returns an empty record with its timestamp set to NoTimestamp.
//
func NewRecord() *Record {
	return &Record{
		Timestamp:  NoTimestamp,
		Attributes: make(map[string]string),
	}
}

// Keys returns the attribute keys of r in sorted order.
//
func (r *Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.Attributes))
}

// String returns a representation of the record in the input syntax, with
// attributes sorted by key. Values that contain separators are quoted. This
// should be used only for debugging purposes.
//
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(r.Timestamp, 10))
	for i, k := range r.Keys() {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		v := r.Attributes[k]
		if strings.ContainsAny(v, " ,=\"\n") {
			v = strconv.Quote(v)
		}
		sb.WriteString(v)
	}
	return sb.String()
}

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

// Package jsonl encodes records as JSON Lines: one JSON object per line.
//
//	{"timestamp":1234,"attributes":{"boat":"goat","cat":"hat"}}
//
// Attribute keys are written in sorted order so that identical records are
// encoded identically.
//
package jsonl

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/logfsm"
	"github.com/google/uuid"
	"github.com/valyala/fastjson"
)

// Namespace is the UUID namespace of record ids.
//
var Namespace = uuid.MustParse("6f1b8e2a-3c55-4d3e-9a0e-3b7f7c1c2d52")

// ID returns the record id of r: a name based (SHA-1) UUID in Namespace of
// the record's JSON encoding without id.
//
func ID(r *logfsm.Record) uuid.UUID {
	return uuid.NewSHA1(Namespace, Marshal(r))
}

// EncoderOption is a configuration option for an Encoder.
//
type EncoderOption func(*Encoder)

// WithIDs adds an "id" field holding the record id to every encoded record.
//
func WithIDs() EncoderOption {
	return func(e *Encoder) {
		e.ids = true
	}
}

// An Encoder writes records to an output stream.
//
// An Encoder is not safe for concurrent use.
//
type Encoder struct {
	w   io.Writer
	a   fastjson.Arena
	buf []byte
	ids bool
}

// NewEncoder returns a new encoder that writes to w.
//
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes the JSON encoding of r followed by a newline character.
//
func (e *Encoder) Encode(r *logfsm.Record) error {
	e.buf = append(e.marshal(e.buf[:0], r), '\n')
	_, err := e.w.Write(e.buf)
	return err
}

// Marshal returns the JSON encoding of r.
//
func Marshal(r *logfsm.Record, opts ...EncoderOption) []byte {
	return NewEncoder(nil, opts...).marshal(nil, r)
}

func (e *Encoder) marshal(dst []byte, r *logfsm.Record) []byte {
	a := &e.a
	defer a.Reset()

	o := a.NewObject()
	if e.ids {
		o.Set("id", a.NewString(ID(r).String()))
	}
	o.Set("timestamp", a.NewNumberString(strconv.FormatInt(r.Timestamp, 10)))
	attrs := a.NewObject()
	for _, k := range r.Keys() {
		attrs.Set(k, a.NewString(r.Attributes[k]))
	}
	o.Set("attributes", attrs)
	return o.MarshalTo(dst)
}

// ErrInvalidRecord is returned by Decode when the input is valid JSON but
// not an encoded record.
//
var ErrInvalidRecord = errors.New("invalid record")

var parsers fastjson.ParserPool

// Decode parses one JSON encoded record. The "id" field, if any, is ignored.
//
func Decode(b []byte) (*logfsm.Record, error) {
	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidRecord, v.Type())
	}
	rec := logfsm.NewRecord()
	ts := v.Get("timestamp")
	if ts == nil {
		return nil, fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	}
	if rec.Timestamp, err = ts.Int64(); err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", ErrInvalidRecord, err)
	}
	attrs := v.Get("attributes")
	if attrs == nil {
		return rec, nil
	}
	o, err := attrs.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: attributes: %w", ErrInvalidRecord, err)
	}
	o.Visit(func(k []byte, v *fastjson.Value) {
		if err != nil {
			return
		}
		var s []byte
		if s, err = v.StringBytes(); err != nil {
			err = fmt.Errorf("%w: attribute %q: %w", ErrInvalidRecord, k, err)
			return
		}
		rec.Attributes[string(k)] = string(s)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

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
	"log/slog"
)

type options struct {
	name         string
	logger       *slog.Logger
	errorHandler func(err error)
}

// An Option is a configuration option for a Parser or Scanner.
//
type Option func(*options)

// Name sets the input name used in error positions.
//
func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used to trace unexpected input and dropped
// lines. The default logger discards everything.
//
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ErrorHandler defines a custom error handler callback for Parse and
// ParseString. It is called for every non-fatal error in input order. If no
// error handler is defined, errors are logged at warning level.
//
func ErrorHandler(f func(err error)) Option {
	return func(o *options) {
		o.errorHandler = f
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.errorHandler == nil {
		l := o.logger
		o.errorHandler = func(err error) {
			l.Warn("parse error", "error", err)
		}
	}
	return o
}

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
	"strconv"
	"unicode/utf8"
)

// VM is the interpreter of the automaton operations. It owns the accumulator
// holding the token being scanned and the stack of completed tokens waiting
// to be stored as attributes.
//
// The zero value is ready to use.
//
type VM struct {
	acc   []byte
	stack []string
}

// Reset clears the accumulator and the token stack.
//
func (vm *VM) Reset() {
	vm.acc = vm.acc[:0]
	vm.stack = vm.stack[:0]
}

// Pending returns true if the accumulator or the token stack hold data.
//
func (vm *VM) Pending() bool {
	return len(vm.acc) > 0 || len(vm.stack) > 0
}

// Execute performs the operation of ps for the input character r, updating
// rec as needed.
//
// A failed FinalizeTimestamp leaves the record timestamp untouched and
// returns an error wrapping ErrMalformedTimestamp. FinalizeAttributes stores
// all complete key/value pairs; if a token is left over, it is discarded and
// the returned error wraps ErrUnbalancedTokens. In all cases the VM is left
// in a consistent state and can keep processing input.
//
func (vm *VM) Execute(rec *Record, ps ParseState, r rune) error {
	switch ps.Op {
	case Skip:
	case Accumulate:
		vm.acc = utf8.AppendRune(vm.acc, r)
	case FinalizeTimestamp:
		tok := string(vm.acc)
		vm.acc = vm.acc[:0]
		ts, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrMalformedTimestamp, tok, err)
		}
		rec.Timestamp = ts
	case PushToken:
		vm.push()
	case FinalizeAttributes:
		vm.push()
		return vm.storeAttributes(rec)
	default:
		return fmt.Errorf("%w %v", ErrInvalidOperation, ps.Op)
	}
	return nil
}

func (vm *VM) push() {
	vm.stack = append(vm.stack, string(vm.acc))
	vm.acc = vm.acc[:0]
}

// storeAttributes drains the stack from the top, two tokens at a time. Each
// pair overwrites any previous value of its key, so for duplicate keys the
// leftmost occurrence on the line is the one that is kept.
//
func (vm *VM) storeAttributes(rec *Record) error {
	if rec.Attributes == nil {
		rec.Attributes = make(map[string]string, len(vm.stack)/2)
	}
	n := len(vm.stack)
	for ; n >= 2; n -= 2 {
		rec.Attributes[vm.stack[n-2]] = vm.stack[n-1]
	}
	var err error
	if n > 0 {
		// the dangling token is the oldest one on the stack
		err = fmt.Errorf("%w: dangling token %q", ErrUnbalancedTokens, vm.stack[0])
	}
	vm.stack = vm.stack[:0]
	return err
}

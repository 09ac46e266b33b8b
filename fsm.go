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

import "strconv"

// State is a position of the line parsing automaton.
//
type State uint8

// Automaton states.
//
const (
	Start              State = iota // nothing expected yet, or resynchronizing
	Timestamp                       // reading timestamp digits
	TimestampOrEnd                  // a record was just completed
	Key                             // reading an attribute key
	ValueOrQuotedValue              // just read '='
	Value                           // reading an unquoted value
	QuotedValue                     // reading a value between double quotes
	QuotedValueEnd                  // read the closing quote of a value
	LineEnd                         // read a line terminator outside of a record
	Whitespace                      // skipping spaces between tokens
	numStates
)

// Unknown is an alias for Start, the state the automaton falls back to on
// unexpected input.
//
const Unknown = Start

var stateNames = [...]string{
	Start:              "Start",
	Timestamp:          "Timestamp",
	TimestampOrEnd:     "TimestampOrEnd",
	Key:                "Key",
	ValueOrQuotedValue: "ValueOrQuotedValue",
	Value:              "Value",
	QuotedValue:        "QuotedValue",
	QuotedValueEnd:     "QuotedValueEnd",
	LineEnd:            "LineEnd",
	Whitespace:         "Whitespace",
}

func (s State) String() string {
	if s < numStates {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Operation is the action the interpreter performs for the current input
// character.
//
type Operation uint8

// Operations.
//
const (
	Skip               Operation = iota // ignore the character
	Accumulate                          // append the character to the accumulator
	FinalizeTimestamp                   // parse the accumulator as the record timestamp
	PushToken                           // move the accumulator onto the token stack
	FinalizeAttributes                  // push the accumulator, then store key/value pairs
	numOperations
)

var opNames = [...]string{
	Skip:               "Skip",
	Accumulate:         "Accumulate",
	FinalizeTimestamp:  "FinalizeTimestamp",
	PushToken:          "PushToken",
	FinalizeAttributes: "FinalizeAttributes",
}

func (o Operation) String() string {
	if o < numOperations {
		return opNames[o]
	}
	return "Operation(" + strconv.Itoa(int(o)) + ")"
}

// ParseState is the output of the automaton for one input character: the
// state it moved to and the operation to execute.
//
type ParseState struct {
	State State
	Op    Operation
}

func (ps ParseState) String() string {
	return ps.State.String() + "/" + ps.Op.String()
}

// InitialState returns the state of the automaton before any input.
//
func InitialState() ParseState {
	return ParseState{Start, Skip}
}

// Transition computes the next state of the automaton given its current
// state s and the input character r.
//
// Transition is a pure function. It never fails: any character for which the
// grammar has no rule leads to a fallback state. The boolean result is false
// when that fallback denotes unexpected input that callers should report.
//
func Transition(s State, r rune) (ParseState, bool) {
	switch s {
	case Whitespace:
		switch r {
		case ' ':
			return ParseState{Whitespace, Skip}, true
		case '\n':
			return ParseState{LineEnd, Skip}, false
		}
		return ParseState{Key, Accumulate}, true

	case Key:
		switch r {
		case '=':
			return ParseState{ValueOrQuotedValue, PushToken}, true
		case '\n':
			return ParseState{LineEnd, Skip}, false
		}
		return ParseState{Key, Accumulate}, true

	case ValueOrQuotedValue:
		switch r {
		case '"':
			return ParseState{QuotedValue, Skip}, true
		case '\n':
			return ParseState{TimestampOrEnd, FinalizeAttributes}, true
		}
		return ParseState{Value, Accumulate}, true

	case QuotedValue:
		switch r {
		case '"':
			return ParseState{QuotedValueEnd, Skip}, true
		case '\n':
			return ParseState{TimestampOrEnd, FinalizeAttributes}, true
		}
		return ParseState{QuotedValue, Accumulate}, true

	case Value, QuotedValueEnd:
		switch r {
		case '"':
			return ParseState{QuotedValueEnd, Skip}, true
		case '\n':
			return ParseState{TimestampOrEnd, FinalizeAttributes}, true
		case ',':
			return ParseState{Whitespace, PushToken}, true
		}
		return ParseState{s, Accumulate}, true
	}

	// Start, LineEnd, Timestamp, TimestampOrEnd and invalid states.
	switch {
	case r == '\n':
		return ParseState{LineEnd, Skip}, true
	case r >= '0' && r <= '9':
		return ParseState{Timestamp, Accumulate}, true
	case r == ' ':
		return ParseState{Whitespace, FinalizeTimestamp}, true
	}
	return ParseState{Start, Skip}, false
}

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

/*
Package logfsm parses semi-structured log lines into records using a
character level finite state machine.

Input format

Each line holds a decimal timestamp, one or more spaces, then a comma
separated list of attributes, and ends with a line feed:

	1234  cat="hat", boat=goat
	1235  mem=23234M, cpu=2131

Values are either bare or enclosed in double quotes. Inside quotes, commas and
equal signs are part of the value; the quotes themselves are never part of it.
There are no escape sequences.

The machine

The automaton is split in two parts. Transition is a pure function that maps
the current State and an input character to the next state and the Operation
to perform. A VM executes that operation: it accumulates characters into the
current token, moves completed tokens onto a stack, and stores them into the
Record being built.

	ps := logfsm.InitialState()
	var vm logfsm.VM
	rec := logfsm.NewRecord()
	for _, r := range line {
		ps, _ = logfsm.Transition(ps.State, r)
		if err := vm.Execute(rec, ps, r); err != nil {
			// ...
		}
	}

Parser wraps this loop, tracks positions and implements error recovery.
Scanner reads from an io.Reader and Parse collects all the records of an
input.

Error handling

No input causes a panic or aborts parsing. Every problem is reported as an
*Error holding the position of the offending character and wrapping one of
the Err* values of this package:

  - unexpected characters (ErrUnexpectedInput) and malformed timestamps
    (ErrMalformedTimestamp) cause the whole line to be skipped. Parsing
    resumes at the next line feed.
  - a line with a timestamp but no attributes is reported with
    ErrIncompleteLine.
  - an unterminated last line is discarded and reported with
    ErrUnterminatedLine.

Only I/O errors (ErrIO) are fatal. Blank lines are ignored.
*/
package logfsm

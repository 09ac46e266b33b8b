package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/logfsm"
	"golang.org/x/text/width"
)

// reportError reports a parse error in the form:
//
//	file:line:col: error description
//	|source line where the error occurred
//	|      ^
func reportError(w io.Writer, src []byte, e *logfsm.Error) {
	fmt.Fprintf(w, "%s: error: %v\n", e.Pos, e.Err)
	if e.Pos.Line == 0 {
		return
	}
	l := lineAt(src, e.Pos.Offset)
	b := e.Pos.Column - 1
	if b > len(l) {
		b = len(l)
	}
	fmt.Fprintf(w, "|%s\n", printable(l))
	fmt.Fprintf(w, "|%s^\n", strings.Repeat(" ", getWidth(l[:b])))
}

// lineAt returns the line of src holding the byte at offset off, without its
// line terminator.
func lineAt(src []byte, off int) []byte {
	if off > len(src) {
		off = len(src)
	}
	start := bytes.LastIndexByte(src[:off], '\n') + 1
	end := bytes.IndexByte(src[off:], '\n')
	if end < 0 {
		return src[start:]
	}
	return src[start : off+end]
}

// printable replaces control characters with spaces so that they do not mess
// up the terminal.
func printable(l []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if r < ' ' {
			return ' '
		}
		return r
	}, l)
}

// getWidth computes the width in text cells of a given byte slice.
// (supposing rendering with a UTF-8 locale and monospaced font)
func getWidth(l []byte) int {
	w := 0
	for i := 0; i < len(l); {
		r, s := utf8.DecodeRune(l[i:])
		i += s
		switch {
		case r < ' ':
			w++
			continue
		case !unicode.IsGraphic(r):
			continue
		}
		p := width.LookupRune(r)
		switch p.Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			// EastAsianAmbiguous depends on user locale. 2 if locale is CJK, 1 otherwise.
			w++
		}
	}
	return w
}

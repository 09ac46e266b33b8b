package logfsm_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/db47h/logfsm"
)

type testData struct {
	name  string
	input string
	recs  []string
	errs  []string
}

// parse returns the string representation of the records and errors in input.
func parse(t *testing.T, input string) ([]string, []string) {
	t.Helper()
	var errs []string
	recs, err := logfsm.ParseString(input, logfsm.ErrorHandler(func(err error) {
		var e *logfsm.Error
		if !errors.As(err, &e) {
			t.Errorf("error %v is not an *Error", err)
		}
		errs = append(errs, err.Error())
	}))
	if err != nil {
		t.Fatalf("unexpected fatal error %v", err)
	}
	var rs []string
	for i := range recs {
		rs = append(rs, recs[i].String())
	}
	return rs, errs
}

func check(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %q, got %q", what, want, got)
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s %d: expected %q, got %q", what, i, want[i], got[i])
		}
	}
}

func TestParse(t *testing.T) {
	tests := []testData{
		{"quoted", "1234  cat=\"hat\", boat=goat\n",
			[]string{"1234 boat=goat, cat=hat"}, nil},
		{"plain", "1235  mem=23234M, cpu=2131\n",
			[]string{"1235 cpu=2131, mem=23234M"}, nil},
		{"single_space", "7 a=b\n", []string{"7 a=b"}, nil},
		{"two_lines", "1  a=b\n2  c=d\n", []string{"1 a=b", "2 c=d"}, nil},
		{"blank_lines", "\n\n\n1  a=b\n\n\n2  c=d\n\n", []string{"1 a=b", "2 c=d"}, nil},
		{"quoted_delimiters", "3  q=\"a, b=c\", r=s\n", []string{`3 q="a, b=c", r=s`}, nil},
		{"quoted_spaces", "3  q=\"  x \"\n", []string{`3 q="  x "`}, nil},
		{"unicode", "1234  pretty=きれいな, 猫=\"ねこ\"\n", []string{"1234 pretty=きれいな, 猫=ねこ"}, nil},
		{"duplicate_key", "5  a=1, b=2, a=3\n", []string{"5 a=1, b=2"}, nil},
		{"empty_value", "5  a=\"\", b=\n", []string{"5 a=, b="}, nil},
		{"comma_after_eq", "1  a=,b=c\n", []string{`1 a=",b=c"`}, nil},
		{"value_with_eq", "5  url=a=b\n", []string{`5 url="a=b"`}, nil},
		{"trailing_chars_after_quote", "5  a=\"x\"y\n", []string{"5 a=xy"}, nil},
		{"large_timestamp", "9223372036854775807  a=b\n", []string{"9223372036854775807 a=b"}, nil},
		{"malformed_timestamp", "abc  key=val\n1  a=b\n",
			[]string{"1 a=b"},
			[]string{"1:1: unexpected input U+0061 'a' in state Start"}},
		{"timestamp_overflow", "9223372036854775808  k=v\n",
			nil,
			[]string{`1:20: malformed timestamp "9223372036854775808": strconv.ParseInt: parsing "9223372036854775808": value out of range`}},
		{"leading_space", " 1  k=v\n", nil,
			[]string{`1:1: malformed timestamp "": strconv.ParseInt: parsing "": invalid syntax`}},
		{"key_without_value", "1  key\n2  a=b\n",
			[]string{"2 a=b"},
			[]string{"1:7: unexpected input U+000A in state Key"}},
		{"dangling_comma", "1  a=b, \n2  c=d\n",
			[]string{"2 c=d"},
			[]string{"1:9: unexpected input U+000A in state Whitespace"}},
		{"timestamp_only", "1234\n5678  a=b\n",
			[]string{"5678 a=b"},
			[]string{"1:5: line has no attributes"}},
		{"garbage_then_valid", "hello world\n!!\n42  ok=yes\n",
			[]string{"42 ok=yes"},
			[]string{
				"1:1: unexpected input U+0068 'h' in state Start",
				"2:1: unexpected input U+0021 '!' in state LineEnd",
			}},
		{"garbage_in_timestamp", "12x4  a=b\n", nil,
			[]string{"1:3: unexpected input U+0078 'x' in state Timestamp"}},
		{"unterminated", "1  a=b\n2  c=d", []string{"1 a=b"},
			[]string{"2:7: unterminated line"}},
		{"trailing_blank_line", "1  a=b\n\n", []string{"1 a=b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, errs := parse(t, tt.input)
			check(t, "record", recs, tt.recs)
			check(t, "error", errs, tt.errs)
		})
	}
}

// Parsing the concatenation of valid lines yields the same records as parsing
// each line independently.
func TestParse_concat(t *testing.T) {
	lines := []string{
		"1234  cat=\"hat\", boat=goat\n",
		"1235  mem=23234M, cpu=2131\n",
		"1236  spacious=ひろい, q=\"x, y\"\n",
	}
	var want []string
	for _, l := range lines {
		recs, errs := parse(t, l)
		if len(recs) != 1 || len(errs) != 0 {
			t.Fatalf("%q: got records %q, errors %q", l, recs, errs)
		}
		want = append(want, recs...)
	}
	got, errs := parse(t, strings.Join(lines, ""))
	check(t, "record", got, want)
	check(t, "error", errs, nil)
}

func TestParser_Feed(t *testing.T) {
	p := logfsm.NewParser(logfsm.Name("feed"))
	var recs []*logfsm.Record
	for _, r := range "\n1234  cat=\"hat\", boat=goat\n" {
		rec, err := p.Feed(r)
		if err != nil {
			t.Fatal(err)
		}
		if rec != nil {
			recs = append(recs, rec)
		}
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Timestamp != 1234 || rec.Attributes["cat"] != "hat" || rec.Attributes["boat"] != "goat" || len(rec.Attributes) != 2 {
		t.Errorf("unexpected record %v", rec)
	}
	if got := p.State(); got.State != logfsm.TimestampOrEnd {
		t.Errorf("expected state TimestampOrEnd, got %v", got)
	}
	if err := p.Flush(); err != nil {
		t.Errorf("unexpected error on Flush: %v", err)
	}
	if pos := p.Position(p.Pos() - 1); pos.String() != "feed:2:27" {
		t.Errorf("unexpected position %v", pos)
	}
}

func TestParser_errorPosition(t *testing.T) {
	p := logfsm.NewParser(logfsm.Name("input"))
	var err error
	for _, r := range "1  a=b\n1é3  k=v\n" {
		if _, e := p.Feed(r); e != nil && err == nil {
			err = e
		}
	}
	var e *logfsm.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}
	want := logfsm.Position{Filename: "input", Offset: 8, Line: 2, Column: 2}
	if e.Pos != want {
		t.Errorf("expected position %v, got %v", want, e.Pos)
	}
	if !errors.Is(err, logfsm.ErrUnexpectedInput) {
		t.Errorf("expected ErrUnexpectedInput, got %v", err)
	}
}

type failReader struct {
	r io.Reader
}

var errBroken = errors.New("broken pipe")

func (f *failReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, errBroken
	}
	return n, err
}

func TestParse_ioError(t *testing.T) {
	recs, err := logfsm.Parse(&failReader{strings.NewReader("1  a=b\n2  c=")})
	if !errors.Is(err, logfsm.ErrIO) || !errors.Is(err, errBroken) {
		t.Fatalf("expected I/O error, got %v", err)
	}
	if !logfsm.IsFatal(err) {
		t.Errorf("IsFatal(%v) = false", err)
	}
	if len(recs) != 1 || recs[0].Timestamp != 1 {
		t.Errorf("unexpected records %v", recs)
	}
}

func ExampleParseString() {
	input := "\n1234  cat=\"hat\", boat=goat\nabc  key=val\n1235  mem=23234M, cpu=2131\n"
	recs, err := logfsm.ParseString(input, logfsm.ErrorHandler(func(err error) {
		fmt.Println("error:", err)
	}))
	if err != nil {
		panic(err)
	}
	for _, r := range recs {
		fmt.Println(r.String())
	}

	// Output:
	// error: 3:1: unexpected input U+0061 'a' in state TimestampOrEnd
	// 1234 boat=goat, cat=hat
	// 1235 cpu=2131, mem=23234M
}

package jsonl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/logfsm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) []logfsm.Record {
	t.Helper()
	recs, err := logfsm.ParseString(input, logfsm.ErrorHandler(func(err error) {
		t.Errorf("unexpected parse error: %v", err)
	}))
	require.NoError(t, err)
	return recs
}

func TestEncoder(t *testing.T) {
	recs := mustParse(t, "1234  cat=\"hat\", boat=goat\n1235  path=C:\\dir\ttab\n")
	require.Len(t, recs, 2)

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := range recs {
		require.NoError(t, enc.Encode(&recs[i]))
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"timestamp":1234,"attributes":{"boat":"goat","cat":"hat"}}`, lines[0])
	assert.Equal(t, `{"timestamp":1235,"attributes":{"path":"C:\\dir\ttab"}}`, lines[1])
}

func TestEncoder_ids(t *testing.T) {
	recs := mustParse(t, "1  a=b, c=d\n1  c=d, a=b\n2  a=b, c=d\n")
	require.Len(t, recs, 3)

	id0, id1, id2 := ID(&recs[0]), ID(&recs[1]), ID(&recs[2])
	assert.Equal(t, id0, id1, "identical records must have identical ids")
	assert.NotEqual(t, id0, id2)
	assert.Equal(t, uuid.Version(5), id0.Version())

	b := Marshal(&recs[0], WithIDs())
	assert.Equal(t, `{"id":"`+id0.String()+`","timestamp":1,"attributes":{"a":"b","c":"d"}}`, string(b))
}

func TestID_keysWithSeparators(t *testing.T) {
	// both records print as "1 a=, b=c"
	r0 := &logfsm.Record{Timestamp: 1, Attributes: map[string]string{"a=, b": "c"}}
	r1 := &logfsm.Record{Timestamp: 1, Attributes: map[string]string{"a": "", "b": "c"}}
	require.Equal(t, r0.String(), r1.String())
	assert.NotEqual(t, ID(r0), ID(r1))

	got, err := Decode(Marshal(r0, WithIDs()))
	require.NoError(t, err)
	assert.Equal(t, ID(r0), ID(got))
}

func TestDecode(t *testing.T) {
	recs := mustParse(t, "1236  spacious=ひろい, mem=23234M, q=\"x, y=z\"\n")
	require.Len(t, recs, 1)

	got, err := Decode(Marshal(&recs[0], WithIDs()))
	require.NoError(t, err)
	assert.Equal(t, recs[0], *got)
}

func TestDecode_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1]`},
		{"no_timestamp", `{"attributes":{}}`},
		{"float_timestamp", `{"timestamp":1.5}`},
		{"attributes_not_object", `{"timestamp":1,"attributes":[]}`},
		{"attribute_not_string", `{"timestamp":1,"attributes":{"a":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}

	_, err := Decode([]byte(`{"timestamp":`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRecord)
}

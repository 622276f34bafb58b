package linesource

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, ok := r.Next()
		if !ok {
			break
		}
		lines = append(lines, string(line))
	}
	return lines
}

func TestReaderLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single newline", input: "\n", want: []string{""}},
		{name: "lf", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\n\r\nb\r\n", want: []string{"a", "", "b"}},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "only one cr stripped", input: "a\r\r\n", want: []string{"a\r"}},
		{name: "blank lines kept", input: "x\n\n\ny\n", want: []string{"x", "", "", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, readAll(t, r))
			require.NoError(t, r.Err())
		})
	}
}

func TestReaderLongLines(t *testing.T) {
	long := strings.Repeat("x", 3*defaultBufferSize+17)
	input := "short\n" + long + "\r\n" + long + "\nend"

	r := NewReader(iotest.HalfReader(strings.NewReader(input)))
	lines := readAll(t, r)
	require.NoError(t, r.Err())
	require.Len(t, lines, 4)
	assert.Equal(t, "short", lines[0])
	assert.Equal(t, long, lines[1])
	assert.Equal(t, long, lines[2])
	assert.Equal(t, "end", lines[3])
}

func TestReaderOneByteReads(t *testing.T) {
	r := NewReader(iotest.OneByteReader(strings.NewReader("perf 1\n\tffff sym (mod)\n\n")))
	assert.Equal(t, []string{"perf 1", "\tffff sym (mod)", ""}, readAll(t, r))
}

func TestReaderError(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(io.MultiReader(strings.NewReader("a\n"), iotest.ErrReader(boom)))

	line, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, "a", string(line))

	_, ok = r.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Err(), boom)

	_, ok = r.Next()
	assert.False(t, ok)
}

func TestReaderClose(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\n"))
	_, ok := r.Next()
	require.True(t, ok)

	r.Close()
	_, ok = r.Next()
	assert.False(t, ok)
	assert.NoError(t, r.Err())
}

package debug

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Summary{
		ReadDuration:  1500 * time.Millisecond,
		WriteDuration: 42 * time.Millisecond,
		Samples:       12345678,
		UniqueStacks:  4321,
		Symbols:       99,
		MaxRSS:        3 << 20,
	})

	out := buf.String()
	assert.Contains(t, out, "reading and processing time:")
	assert.Contains(t, out, "1500ms")
	assert.Contains(t, out, "sorting and writing time:")
	assert.Contains(t, out, "42ms")
	assert.Contains(t, out, "12,345,678")
	assert.Contains(t, out, "4,321")
	assert.Contains(t, out, "3.0 MiB")
	assert.NotContains(t, out, "malformed")
}

func TestWriteSummaryMalformed(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Summary{Malformed: 7})

	out := buf.String()
	assert.Contains(t, out, "malformed lines:")
	assert.NotContains(t, out, "peak memory")
}

package flamegraph

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSVG(t *testing.T) {
	stacks := []Stack{
		{Frames: []string{"proc", "main", "work"}, Count: 3},
		{Frames: []string{"proc", "main", "<idle>"}, Count: 1},
	}

	var out bytes.Buffer
	opts := DefaultSVGOptions()
	opts.Title = "CPU & friends"
	require.NoError(t, RenderSVG(stacks, &out, opts))

	svg := out.String()
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Contains(t, svg, "CPU &amp; friends")
	assert.Contains(t, svg, "(4 samples)")
	assert.Contains(t, svg, "<title>work (3 samples, 75.0%)</title>")
	assert.Contains(t, svg, "<title>&lt;idle&gt; (1 samples, 25.0%)</title>")
	assert.Equal(t, 5, strings.Count(svg, `<g class="func">`))
}

func TestRenderSVGNoSamples(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, RenderSVG(nil, &out, SVGOptions{}), ErrNoSamples)
	assert.Zero(t, out.Len())
}

func TestBuildTree(t *testing.T) {
	root := buildTree([]Stack{
		{Frames: []string{"p", "a"}, Count: 2},
		{Frames: []string{"p", "b"}, Count: 5},
	})
	assert.Equal(t, uint64(7), root.value)
	require.Contains(t, root.children, "p")
	assert.Equal(t, uint64(7), root.children["p"].value)
	assert.Equal(t, uint64(5), root.children["p"].children["b"].value)
	assert.Equal(t, 2, getMaxDepth(root, 0))
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int
		want     string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated_symbol", 8, "trunca.."},
		{"ab", 1, ""},
		{"tiny_width", 3, ""},
		{"ääää", 6, "ää.."},
		{"ääää", 5, "ä.."},
		{"日本語の関数", 7, "日.."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateLabel(tt.name, tt.maxBytes)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

package flamegraph

import (
	"errors"
	"fmt"
	"html"
	"io"
	"sort"
	"unicode/utf8"
)

// SVGOptions configures the flame graph SVG output.
type SVGOptions struct {
	Title       string
	Width       int
	Height      int
	ColorScheme string // "hot", "cold", "mem"
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Title:       "Flame Graph",
		Width:       1200,
		ColorScheme: "hot",
	}
}

// ErrNoSamples is returned when there is nothing to render.
var ErrNoSamples = errors.New("no samples found in folded stacks")

// frame is a node of the merged call tree.
type frame struct {
	name     string
	value    uint64
	children map[string]*frame
}

func newFrame(name string) *frame {
	return &frame{
		name:     name,
		children: make(map[string]*frame),
	}
}

func buildTree(stacks []Stack) *frame {
	root := newFrame("all")
	for _, s := range stacks {
		node := root
		for _, name := range s.Frames {
			child, ok := node.children[name]
			if !ok {
				child = newFrame(name)
				node.children[name] = child
			}
			child.value += s.Count
			node = child
		}
		root.value += s.Count
	}
	return root
}

// RenderSVG renders folded stacks as an SVG flame graph, process at the
// bottom and leaf frames on top.
func RenderSVG(stacks []Stack, svg io.Writer, opts SVGOptions) error {
	if opts.Width == 0 {
		opts.Width = 1200
	}

	root := buildTree(stacks)
	if root.value == 0 {
		return ErrNoSamples
	}

	const (
		frameHeight  = 16
		fontSize     = 12
		headerHeight = 40
	)
	maxDepth := getMaxDepth(root, 0)
	if opts.Height == 0 {
		opts.Height = (maxDepth+2)*frameHeight + headerHeight + 20
	}

	if _, err := fmt.Fprintf(svg, `<?xml version="1.0" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg1.1.dtd">
<svg version="1.1" width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<style>
  .func:hover { stroke:black; stroke-width:0.5; cursor:pointer; }
  text { font-family: monospace; font-size: %dpx; }
</style>
<rect x="0" y="0" width="%d" height="%d" fill="white"/>
<text x="%d" y="20" text-anchor="middle" style="font-size:16px; font-weight:bold;">%s</text>
<text x="%d" y="35" text-anchor="middle" style="font-size:12px; fill:#666;">(%d samples)</text>
`,
		opts.Width, opts.Height, fontSize,
		opts.Width, opts.Height,
		opts.Width/2, html.EscapeString(opts.Title),
		opts.Width/2, root.value); err != nil {
		return err
	}

	r := svgRenderer{
		w:           svg,
		baseY:       opts.Height - 20,
		frameHeight: frameHeight,
		total:       root.value,
		scheme:      opts.ColorScheme,
	}
	margin := 10
	r.render(root, margin, opts.Width-2*margin, 0)

	if r.err != nil {
		return r.err
	}
	_, err := fmt.Fprintln(svg, "</svg>")
	return err
}

type svgRenderer struct {
	w           io.Writer
	baseY       int
	frameHeight int
	total       uint64
	scheme      string
	err         error
}

func (r *svgRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *svgRenderer) render(f *frame, x, width, depth int) {
	if width < 1 || f.value == 0 || r.err != nil {
		return
	}

	y := r.baseY - depth*r.frameHeight
	red, green, blue := frameColor(depth, r.scheme)
	r.printf(`<g class="func">
<rect x="%d" y="%d" width="%d" height="%d" fill="rgb(%d,%d,%d)" rx="1"/>
`, x, y-r.frameHeight, width, r.frameHeight-1, red, green, blue)

	if width > 40 {
		if label := truncateLabel(f.name, (width-4)/7); label != "" {
			r.printf(`<text x="%d" y="%d" fill="black">%s</text>
`, x+2, y-4, html.EscapeString(label))
		}
	}

	pct := float64(f.value) / float64(r.total) * 100
	r.printf(`<title>%s (%d samples, %.1f%%)</title>
</g>
`, html.EscapeString(f.name), f.value, pct)

	names := make([]string, 0, len(f.children))
	for name := range f.children {
		names = append(names, name)
	}
	sort.Strings(names)

	childX := x
	for _, name := range names {
		child := f.children[name]
		childWidth := int(float64(width) * float64(child.value) / float64(f.value))
		if childWidth < 1 {
			childWidth = 1
		}
		r.render(child, childX, childWidth, depth+1)
		childX += childWidth
	}
}

// truncateLabel shortens name to at most maxBytes bytes, ending in "..", without
// splitting a UTF-8 sequence.
func truncateLabel(name string, maxBytes int) string {
	if len(name) <= maxBytes {
		return name
	}
	if maxBytes <= 3 {
		return ""
	}
	cut := maxBytes - 2
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut] + ".."
}

func frameColor(depth int, scheme string) (int, int, int) {
	// Deterministic color based on depth
	switch scheme {
	case "cold":
		g := 50 + (depth*30)%150
		b := 150 + (depth*20)%100
		return 30, g, b
	case "mem":
		g := 190 + (depth*15)%60
		return 30, g, 30
	default: // "hot"
		r := 200 + (depth*15)%55
		g := 50 + (depth*40)%150
		return r, g, 30
	}
}

func getMaxDepth(f *frame, depth int) int {
	max := depth
	for _, child := range f.children {
		if d := getMaxDepth(child, depth+1); d > max {
			max = d
		}
	}
	return max
}

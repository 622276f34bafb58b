package flamegraph

import (
	"bufio"
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Stack is one line of folded output: frames root first and the number of
// samples that had exactly this stack.
type Stack struct {
	Frames []string
	Count  uint64
}

var frameReplacer = strings.NewReplacer(";", ":", " ", "_")

// sanitizeFrame makes sym safe to use as a folded-stack frame: ';' is the
// frame separator and a space separates the stack from its count.
func sanitizeFrame(sym string) string {
	if !strings.ContainsAny(sym, "; ") {
		return sym
	}
	return frameReplacer.Replace(sym)
}

// canonicalStack is a stack with ids renumbered in sorted display order,
// root first.
type canonicalStack struct {
	ids   []uint32
	count uint64
}

// canonicalize renumbers symbols by their sanitized text and returns the
// display names indexed by canonical id along with every stack rewritten to
// canonical ids, reversed and sorted. The result depends only on the set of
// recorded stacks and their counts.
func (c *Collapser) canonicalize() ([]string, []canonicalStack) {
	type symbol struct {
		display string
		raw     string
		id      int
	}

	names := c.symbols.Names()
	syms := make([]symbol, len(names))
	for id, name := range names {
		syms[id] = symbol{display: sanitizeFrame(name), raw: name, id: id}
	}
	// Distinct symbols may sanitize to the same text; the raw text keeps the
	// order total.
	slices.SortFunc(syms, func(a, b symbol) int {
		return cmp.Or(strings.Compare(a.display, b.display), strings.Compare(a.raw, b.raw))
	})

	display := make([]string, len(syms))
	canonical := make([]uint32, len(syms))
	for seq, s := range syms {
		display[seq] = s.display
		canonical[s.id] = uint32(seq)
	}

	// All stacks share one backing array.
	total := 0
	for _, r := range c.stacks.records {
		total += len(r.ids)
	}
	arena := make([]uint32, total)

	stacks := make([]canonicalStack, len(c.stacks.records))
	for i, r := range c.stacks.records {
		ids := arena[:len(r.ids):len(r.ids)]
		arena = arena[len(r.ids):]
		for j, id := range r.ids {
			ids[len(ids)-1-j] = canonical[id]
		}
		stacks[i] = canonicalStack{ids: ids, count: r.count}
	}
	slices.SortFunc(stacks, func(a, b canonicalStack) int {
		return slices.Compare(a.ids, b.ids)
	})

	return display, stacks
}

// Fold returns the distinct stacks in output order.
func (c *Collapser) Fold() []Stack {
	display, stacks := c.canonicalize()
	out := make([]Stack, len(stacks))
	for i, s := range stacks {
		frames := make([]string, len(s.ids))
		for j, id := range s.ids {
			frames[j] = display[id]
		}
		out[i] = Stack{Frames: frames, Count: s.count}
	}
	return out
}

// WriteTo writes the folded stacks to w, one "root;...;leaf count" line per
// distinct stack, sorted by frame sequence.
func (c *Collapser) WriteTo(w io.Writer) (int64, error) {
	display, stacks := c.canonicalize()

	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, 256*1024)
	var num [20]byte
	for _, s := range stacks {
		for j, id := range s.ids {
			if j > 0 {
				bw.WriteByte(';')
			}
			bw.WriteString(display[id])
		}
		bw.WriteByte(' ')
		bw.Write(strconv.AppendUint(num[:0], s.count, 10))
		if err := bw.WriteByte('\n'); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

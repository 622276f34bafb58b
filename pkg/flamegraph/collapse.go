package flamegraph

import (
	"github.com/danpilch/stackcollapse/pkg/perfscript"
	"github.com/danpilch/stackcollapse/pkg/symtab"
)

// Options sizes the in-memory tables of a Collapser.
type Options struct {
	SymbolHint int // expected number of distinct symbols
	StackHint  int // expected number of distinct stacks
}

// DefaultOptions returns sizes suited to a multi-million sample recording.
func DefaultOptions() Options {
	return Options{
		SymbolHint: 1 << 16,
		StackHint:  1 << 18,
	}
}

// Collapser aggregates perf script samples into distinct stacks and their
// counts. It implements perfscript.Handler.
type Collapser struct {
	symbols *symtab.Table
	stacks  *stackTable

	// current sample, innermost frame first
	comm   symtab.ID
	frames []symtab.ID

	samples uint64
}

var _ perfscript.Handler = (*Collapser)(nil)

// NewCollapser returns an empty Collapser.
func NewCollapser(opts Options) *Collapser {
	return &Collapser{
		symbols: symtab.New(opts.SymbolHint),
		stacks:  newStackTable(opts.StackHint),
		frames:  make([]symtab.ID, 0, 128),
	}
}

// StackStart records the process name of a new sample and drops any frames
// of an unfinished previous one.
func (c *Collapser) StackStart(h perfscript.Header) {
	c.comm = c.symbols.Intern(h.Comm)
	c.frames = c.frames[:0]
}

// StackFrame appends a frame to the current sample.
func (c *Collapser) StackFrame(sym []byte) {
	c.frames = append(c.frames, c.symbols.Intern(sym))
}

// StackEnd counts the current sample, with the process name as its
// outermost frame.
func (c *Collapser) StackEnd() {
	c.samples++
	c.frames = append(c.frames, c.comm)
	c.stacks.add(c.frames)
	c.frames = c.frames[:0]
}

// Samples returns the number of samples counted.
func (c *Collapser) Samples() uint64 {
	return c.samples
}

// UniqueStacks returns the number of distinct stacks.
func (c *Collapser) UniqueStacks() int {
	return c.stacks.len()
}

// Symbols returns the number of distinct symbols, process names included.
func (c *Collapser) Symbols() int {
	return c.symbols.Len()
}

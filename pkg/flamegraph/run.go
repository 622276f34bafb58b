package flamegraph

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/stackcollapse/pkg/linesource"
	"github.com/danpilch/stackcollapse/pkg/perfscript"
)

// Result describes a completed CollapsePerf run.
type Result struct {
	ReadDuration  time.Duration // reading, parsing and aggregating
	WriteDuration time.Duration // sorting and writing
	Samples       uint64
	UniqueStacks  int
	Symbols       int
	Parse         perfscript.Stats
}

// CollapsePerf converts perf script output read from r to folded stacks
// written to w. All of r is aggregated before anything is written.
//
// Malformed lines and read errors are logged and do not stop the run: the
// stacks aggregated up to that point are still written. The returned error
// only reports a failure to write to w.
func CollapsePerf(r io.Reader, w io.Writer, opts Options, logger *logrus.Logger) (Result, error) {
	var res Result
	start := time.Now()
	collapser, stats := Aggregate(r, opts, logger)
	res.ReadDuration = time.Since(start)

	start = time.Now()
	_, err := collapser.WriteTo(w)
	res.WriteDuration = time.Since(start)

	res.Samples = collapser.Samples()
	res.UniqueStacks = collapser.UniqueStacks()
	res.Symbols = collapser.Symbols()
	res.Parse = stats
	if err != nil {
		return res, fmt.Errorf("writing folded stacks: %w", err)
	}
	return res, nil
}

// Aggregate reads perf script output from r to end of stream and returns the
// populated Collapser. A read error is logged and ends the input early.
func Aggregate(r io.Reader, opts Options, logger *logrus.Logger) (*Collapser, perfscript.Stats) {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	collapser := NewCollapser(opts)
	parser := perfscript.NewParser(collapser, logger)

	src := linesource.NewReader(r)
	defer src.Close()
	if err := parser.Parse(src); err != nil {
		logger.WithError(err).Error("reading input failed, keeping the stacks read so far")
	}
	return collapser, parser.Stats()
}

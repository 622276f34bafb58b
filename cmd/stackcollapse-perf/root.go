package main

import (
	"bytes"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/stackcollapse/pkg/debug"
	"github.com/danpilch/stackcollapse/pkg/flamegraph"
)

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stackcollapse-perf",
		Short:         "Fold perf script output into flame graph stacks",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())
			if len(args) > 0 {
				logger.WithField("args", args).Warn("ignoring arguments, input is read from stdin")
			}
			res, err := flamegraph.CollapsePerf(cmd.InOrStdin(), cmd.OutOrStdout(), flamegraph.DefaultOptions(), logger)
			if err != nil {
				logger.WithError(err).Error("writing output failed")
			}
			debug.WriteSummary(cmd.ErrOrStderr(), debug.Summary{
				ReadDuration:  res.ReadDuration,
				WriteDuration: res.WriteDuration,
				Samples:       res.Samples,
				UniqueStacks:  res.UniqueStacks,
				Symbols:       res.Symbols,
				Malformed:     res.Parse.Malformed,
				MaxRSS:        debug.PeakRSS(),
			})
			return nil
		},
	}
	cmd.AddCommand(newSVGCmd())
	return cmd
}

func newSVGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "svg",
		Short: "Fold perf script output from stdin and render it as an SVG flame graph",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())
			if len(args) > 0 {
				logger.WithField("args", args).Warn("ignoring arguments, input is read from stdin")
			}

			start := time.Now()
			collapser, stats := flamegraph.Aggregate(cmd.InOrStdin(), flamegraph.DefaultOptions(), logger)
			readDuration := time.Since(start)

			start = time.Now()
			var svg bytes.Buffer
			if err := flamegraph.RenderSVG(collapser.Fold(), &svg, flamegraph.DefaultSVGOptions()); err != nil {
				logger.WithError(err).Warn("nothing to render")
			} else if _, err := svg.WriteTo(cmd.OutOrStdout()); err != nil {
				logger.WithError(err).Error("writing output failed")
			}

			debug.WriteSummary(cmd.ErrOrStderr(), debug.Summary{
				ReadDuration:  readDuration,
				WriteDuration: time.Since(start),
				Samples:       collapser.Samples(),
				UniqueStacks:  collapser.UniqueStacks(),
				Symbols:       collapser.Symbols(),
				Malformed:     stats.Malformed,
				MaxRSS:        debug.PeakRSS(),
			})
			return nil
		},
	}
}

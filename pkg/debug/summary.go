// Package debug renders run diagnostics for stackcollapse-perf.
package debug

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	summaryDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Summary holds the end-of-run statistics.
type Summary struct {
	ReadDuration  time.Duration
	WriteDuration time.Duration
	Samples       uint64
	UniqueStacks  int
	Symbols       int
	Malformed     uint64
	// MaxRSS is the peak resident set size in bytes, 0 if unknown.
	MaxRSS uint64
}

// WriteSummary prints a styled report of s.
func WriteSummary(w io.Writer, s Summary) {
	rows := [][2]string{
		{"reading and processing time", formatDuration(s.ReadDuration)},
		{"sorting and writing time", formatDuration(s.WriteDuration)},
		{"stacks", humanize.Comma(int64(s.Samples))},
		{"unique stacks", humanize.Comma(int64(s.UniqueStacks))},
		{"symbols", humanize.Comma(int64(s.Symbols))},
	}
	if s.MaxRSS > 0 {
		rows = append(rows, [2]string{"peak memory", humanize.IBytes(s.MaxRSS)})
	}

	fmt.Fprintln(w, summaryTitle.Render("stackcollapse-perf"))
	fmt.Fprintln(w, summaryDim.Render(strings.Repeat("─", 40)))
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s\n", summaryLabel.Render(fmt.Sprintf("%-28s", r[0]+":")), r[1])
	}
	if s.Malformed > 0 {
		fmt.Fprintf(w, "  %s %s\n",
			summaryWarn.Render(fmt.Sprintf("%-28s", "malformed lines:")),
			humanize.Comma(int64(s.Malformed)))
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

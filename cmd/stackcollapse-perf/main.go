// Command stackcollapse-perf folds `perf script` output read from stdin into
// flame graph stacks on stdout:
//
//	perf script | stackcollapse-perf > out.folded
package main

import (
	"github.com/sirupsen/logrus"
)

// The exit status is always 0, whatever the input or arguments.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("stackcollapse-perf failed")
	}
}

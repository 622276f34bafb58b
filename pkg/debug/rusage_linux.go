//go:build linux

package debug

import "golang.org/x/sys/unix"

// PeakRSS returns the peak resident set size of the current process in
// bytes, or 0 if it cannot be determined.
func PeakRSS() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	// kilobytes on linux
	return uint64(ru.Maxrss) * 1024
}

//go:build unix

package metrics

import (
	"syscall"
	"time"
)

// processCPU returns user plus system CPU time of the calling process.
func processCPU() time.Duration {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

//go:build linux

package spindle

import "golang.org/x/sys/unix"

// osThreadID returns the kernel thread id of the calling thread.
func osThreadID() int {
	return unix.Gettid()
}

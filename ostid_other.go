//go:build !linux

package spindle

// osThreadID reports 0 on platforms without a cheap thread-id syscall.
func osThreadID() int {
	return 0
}

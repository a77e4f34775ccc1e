package ui

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// unixErrorName returns the symbolic name of errno, such as "ENOENT".
func unixErrorName(errno unix.Errno) string {
	if name := unix.ErrnoName(errno); name != "" {
		return name
	}

	return "errno " + strconv.Itoa(int(errno))
}

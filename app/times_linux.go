//go:build linux

package app

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime reads the birth time through statx. Filesystems without
// birth time support fall back to the inode change time.
func creationTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}

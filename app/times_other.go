//go:build !linux

package app

import (
	"os"
	"time"
)

func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}

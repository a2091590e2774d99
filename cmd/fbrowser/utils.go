package main

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ogefest/fbrowser/app"
)

// openFile opens the file with the default system application
func openFile(filePath string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", filePath)
	case "darwin":
		cmd = exec.Command("open", filePath)
	default: // linux, bsd, etc.
		cmd = exec.Command("xdg-open", filePath)
	}
	return cmd.Start()
}

// truncate shortens s to width runes, marking the cut with "~".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "~"
	}
	return string(r[:width-1]) + "~"
}

// crumbs renders the breadcrumb trail of path.
func crumbs(path string) string {
	var parts []string
	for _, p := range app.Ancestors(path) {
		if filepath.Dir(p) == p {
			continue
		}
		parts = append(parts, filepath.Base(p))
	}
	return string(filepath.Separator) + strings.Join(parts, " > ")
}

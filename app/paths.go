package app

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ogefest/fbrowser/internal/logging"
)

const rootPath = "/"

// PathsToHome lists the home directory and all of its ancestors, root
// first. An unusable home directory is replaced by the filesystem root.
func PathsToHome() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		logging.L().Warn("home path empty or nonexistent", logging.Err(err))
		home = rootPath
	}
	return pathsTo(home)
}

func pathsTo(target string) []string {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		logging.L().Warn("path unusable, using root", logging.String("path", target), logging.Err(err))
		target = rootPath
	} else if f, err := os.Open(target); err != nil {
		logging.L().Warn("path not readable, using root", logging.String("path", target), logging.Err(err))
		target = rootPath
	} else {
		f.Close()
	}

	return Ancestors(target)
}

// Ancestors returns the cleaned path and each of its parents, root first.
// An empty path has no ancestors.
func Ancestors(path string) []string {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	var out []string
	for {
		out = append(out, path)
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}
	slices.Reverse(out)
	return out
}

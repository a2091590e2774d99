package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

var errNotDirectory = errors.New("not a directory")

// EntryStore holds the listing of the currently opened directory. It is
// replaced as a whole on every load, never patched.
type EntryStore struct {
	path    string
	entries []models.DirectoryEntry
}

func (s *EntryStore) Path() string {
	return s.path
}

func (s *EntryStore) Len() int {
	return len(s.entries)
}

// At returns a copy of the entry at row.
func (s *EntryStore) At(row int) (models.DirectoryEntry, bool) {
	if row < 0 || row >= len(s.entries) {
		return models.DirectoryEntry{}, false
	}
	return s.entries[row], true
}

// Entries returns a copy of the whole listing.
func (s *EntryStore) Entries() []models.DirectoryEntry {
	return slices.Clone(s.entries)
}

func (s *EntryStore) replace(path string, entries []models.DirectoryEntry) {
	s.path = path
	s.entries = entries
}

// openDirectory resolves path to its absolute form and opens it for
// enumeration.
func openDirectory(path string) (string, *os.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, &OpError{Op: models.OpLoad, Path: path, Kind: ErrPathUnavailable, Err: err}
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", nil, &OpError{Op: models.OpLoad, Path: abs, Kind: ErrPathUnavailable, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return "", nil, &OpError{Op: models.OpLoad, Path: abs, Kind: ErrPathUnavailable, Err: err}
	}
	if !info.IsDir() {
		f.Close()
		return "", nil, &OpError{Op: models.OpLoad, Path: abs, Kind: ErrPathUnavailable, Err: errNotDirectory}
	}

	return abs, f, nil
}

// snapshotEntries turns raw directory entries into listing records,
// dropping hidden names and entries that vanished since they were read. An
// entry that exists but cannot be stat'ed is kept with what the directory
// itself reports: its type, no size and no times.
func snapshotEntries(dir string, dirEntries []os.DirEntry) []models.DirectoryEntry {
	entries := make([]models.DirectoryEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if models.IsHiddenName(de.Name()) {
			continue
		}
		e, err := snapshot(dir, de.Name())
		if errors.Is(err, fs.ErrNotExist) {
			logging.L().Debug("skipping vanished entry",
				logging.String("dir", dir),
				logging.String("name", de.Name()))
			continue
		}
		if err != nil {
			logging.L().Warn("unable to stat entry",
				logging.String("dir", dir),
				logging.String("name", de.Name()),
				logging.Err(err))
			e = bareSnapshot(dir, de)
		}
		entries = append(entries, e)
	}
	return entries
}

func bareSnapshot(dir string, de os.DirEntry) models.DirectoryEntry {
	return models.DirectoryEntry{
		Name:         de.Name(),
		AbsolutePath: dir,
		FilePath:     filepath.Join(dir, de.Name()),
		IsDir:        de.Type().IsDir(),
	}
}

// snapshot captures name inside dir. Symlinks describe their target; a
// dangling link describes the link itself.
func snapshot(dir, name string) (models.DirectoryEntry, error) {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		info, err = os.Lstat(path)
		if err != nil {
			return models.DirectoryEntry{}, err
		}
	}

	e := models.DirectoryEntry{
		Name:         name,
		AbsolutePath: dir,
		FilePath:     path,
		IsDir:        info.IsDir(),
		CreatedAt:    creationTime(path, info),
		ModifiedAt:   info.ModTime(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e, nil
}

// ReadListing enumerates the immediate children of path and returns them
// sorted, together with the canonical path. Nothing is returned on error.
func ReadListing(path string, sorter *Sorter) (string, []models.DirectoryEntry, error) {
	dir, f, err := openDirectory(path)
	if err != nil {
		return "", nil, err
	}
	dirEntries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return "", nil, &OpError{Op: models.OpLoad, Path: dir, Kind: ErrPathUnavailable, Err: err}
	}

	entries := snapshotEntries(dir, dirEntries)
	sorter.Sort(entries)
	return dir, entries, nil
}

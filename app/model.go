package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/internal/metrics"
	"github.com/ogefest/fbrowser/models"
)

var errNoPath = errors.New("no path loaded")

// Journal receives the outcome of every filesystem command the model runs.
type Journal interface {
	Record(op models.Operation)
}

type Option func(*Model)

// WithLocale sets the collation locale used to order names.
func WithLocale(locale string) Option {
	return func(m *Model) {
		m.sorter = NewSorter(locale)
	}
}

// WithJournal adds a journal. It may be given more than once.
func WithJournal(j Journal) Option {
	return func(m *Model) {
		m.journals = append(m.journals, j)
	}
}

// Model is the listing model behind a file browser view: it owns the
// current listing, projects row fields by role key and runs the remove and
// rename commands, reloading the whole listing afterwards.
//
// Model is not safe for concurrent use; every call must come from the same
// goroutine or be serialized by the caller. Row indices are only valid until
// the next EventListingChanged.
type Model struct {
	roles    RoleMap
	sorter   *Sorter
	store    EntryStore
	events   *Broadcaster
	journals []Journal
}

func New(opts ...Option) *Model {
	m := &Model{
		roles:  newRoleMap(),
		events: NewBroadcaster(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sorter == nil {
		m.sorter = NewSorter("")
	}
	return m
}

// Subscribe registers fn for path and listing change events.
func (m *Model) Subscribe(fn Listener) (unsubscribe func()) {
	return m.events.Subscribe(fn)
}

// Path returns the canonical path of the current listing, "" before the
// first successful load.
func (m *Model) Path() string {
	return m.store.Path()
}

func (m *Model) Roles() RoleMap {
	return m.roles
}

func (m *Model) RowCount() int {
	return m.store.Len()
}

// Entry returns a copy of the entry at row.
func (m *Model) Entry(row int) (models.DirectoryEntry, bool) {
	return m.store.At(row)
}

// Entries returns a copy of the current listing.
func (m *Model) Entries() []models.DirectoryEntry {
	return m.store.Entries()
}

// RowOf returns the row of the entry called name, or -1.
func (m *Model) RowOf(name string) int {
	for i := 0; i < m.store.Len(); i++ {
		if e, _ := m.store.At(i); e.Name == name {
			return i
		}
	}
	return -1
}

// Field returns the value of roleKey for row. Unknown keys and rows outside
// the listing yield nil.
func (m *Model) Field(row int, roleKey string) any {
	role, ok := m.roles.Lookup(roleKey)
	if !ok {
		logging.L().Debug("unknown role", logging.String("role", roleKey))
		return nil
	}
	e, ok := m.store.At(row)
	if !ok {
		return nil
	}
	return Project(e, role)
}

// Load lists path and replaces the current listing with it. On failure the
// previous listing and path stay in place and no event fires.
func (m *Model) Load(path string) error {
	logging.L().Debug("changing directory", logging.String("path", path))
	start := time.Now()

	dir, entries, err := ReadListing(path, m.sorter)
	if err != nil {
		metrics.RecordLoad(false, 0)
		metrics.ObserveLoadDuration(time.Since(start))
		m.record(models.Operation{Op: models.OpLoad, Path: path, Error: err.Error()})
		logging.L().Warn("failed to load directory", logging.String("path", path), logging.Err(err))
		return err
	}

	m.commit(dir, entries)
	metrics.RecordLoad(true, len(entries))
	metrics.ObserveLoadDuration(time.Since(start))
	m.record(models.Operation{Op: models.OpLoad, Path: dir, OK: true})
	return nil
}

// Commit installs entries, scanned elsewhere, as the listing of path. Hidden
// entries are dropped and the rest sorted, so the listing invariants hold
// whatever the producer did. The scan time is not known here; the caller
// reports it with metrics.ObserveLoadDuration.
func (m *Model) Commit(path string, entries []models.DirectoryEntry) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return &OpError{Op: models.OpLoad, Path: path, Kind: ErrPathUnavailable, Err: err}
	}

	kept := make([]models.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsHidden() {
			kept = append(kept, e)
		}
	}
	m.sorter.Sort(kept)

	m.commit(dir, kept)
	metrics.RecordLoad(true, len(kept))
	m.record(models.Operation{Op: models.OpLoad, Path: dir, OK: true})
	return nil
}

func (m *Model) commit(dir string, entries []models.DirectoryEntry) {
	prev := m.store.Path()
	m.store.replace(dir, entries)

	if ce := logging.L().Check(logging.DebugLevel, "changed directory"); ce != nil {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		ce.Write(logging.String("path", dir), logging.Strings("entries", names))
	}

	if prev != dir {
		m.events.Publish(Event{Type: EventPathChanged, Path: dir, Rows: len(entries)})
	}
	m.events.Publish(Event{Type: EventListingChanged, Path: dir, Rows: len(entries)})
}

// Refresh reloads the current path.
func (m *Model) Refresh() error {
	if m.store.Path() == "" {
		return &OpError{Op: models.OpLoad, Kind: ErrPathUnavailable, Err: errNoPath}
	}
	return m.Load(m.store.Path())
}

// Remove deletes every file in paths. Relative paths are taken from the
// current directory. Directories are refused. A failure does not stop the
// batch, and the listing is reloaded afterwards even if nothing was removed.
// The returned error joins one ErrRemovalFailed error per failed path plus
// any reload failure.
func (m *Model) Remove(paths []string) error {
	var errs []error
	for _, p := range paths {
		if !filepath.IsAbs(p) && m.store.Path() != "" {
			p = filepath.Join(m.store.Path(), p)
		}

		err := removeFile(p)
		metrics.RecordRemoval(err == nil)
		op := models.Operation{Op: models.OpRemove, Path: p, OK: err == nil}
		if err != nil {
			op.Error = err.Error()
			logging.L().Warn("failed to remove", logging.String("path", p), logging.Err(err))
			errs = append(errs, err)
		}
		m.record(op)
	}

	if err := m.Refresh(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func removeFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return &OpError{Op: models.OpRemove, Path: path, Kind: ErrRemovalFailed, Err: err}
	}
	if info.IsDir() {
		return &OpError{Op: models.OpRemove, Path: path, Kind: ErrRemovalFailed, Err: ErrIsDirectory}
	}
	if err := os.Remove(path); err != nil {
		return &OpError{Op: models.OpRemove, Path: path, Kind: ErrRemovalFailed, Err: err}
	}
	return nil
}

// Rename gives the entry at row the base name newName inside the same
// directory. A nil error means the rename succeeded; the listing is then
// reloaded and any reload error is returned. On failure nothing is reloaded.
// An existing target is never replaced.
func (m *Model) Rename(row int, newName string) error {
	logging.L().Debug("renaming", logging.Int("row", row), logging.String("new_name", newName))

	e, ok := m.store.At(row)
	if !ok {
		err := &OpError{Op: models.OpRename, Path: strconv.Itoa(row), Kind: ErrOutOfRange,
			Err: fmt.Errorf("row %d of %d", row, m.store.Len())}
		logging.L().Warn("out of bounds access", logging.Int("row", row), logging.Int("rows", m.store.Len()))
		return err
	}

	target := e.AbsolutePath + string(os.PathSeparator) + newName
	err := renameEntry(e.FilePath, target)
	metrics.RecordRename(err == nil)
	op := models.Operation{Op: models.OpRename, Path: e.FilePath, Target: target, OK: err == nil}
	if err != nil {
		op.Error = err.Error()
		m.record(op)
		logging.L().Warn("rename failed",
			logging.String("path", e.FilePath),
			logging.String("target", target),
			logging.Err(err))
		return err
	}
	m.record(op)

	return m.Refresh()
}

func renameEntry(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return &OpError{Op: models.OpRename, Path: from, Kind: ErrRenameFailed, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &OpError{Op: models.OpRename, Path: from, Kind: ErrRenameFailed, Err: err}
	}
	if err := os.Rename(from, to); err != nil {
		return &OpError{Op: models.OpRename, Path: from, Kind: ErrRenameFailed, Err: err}
	}
	return nil
}

// ValidEntryName reports whether name can be passed to Rename as a base
// name. Rename itself does not check; views call this before asking.
func ValidEntryName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, os.PathSeparator) && !strings.ContainsRune(name, 0)
}

func (m *Model) record(op models.Operation) {
	if op.At.IsZero() {
		op.At = time.Now()
	}
	for _, j := range m.journals {
		j.Record(op)
	}
}

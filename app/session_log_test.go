package app

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

func readGzip(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSessionLogSummary(t *testing.T) {
	dir := t.TempDir()
	var mirror strings.Builder

	sl, err := NewSessionLog(dir, 0, &mirror)
	if err != nil {
		t.Fatal(err)
	}
	logging.Init(logging.Config{Level: "info", Format: "json", Output: zapcore.AddSync(sl)})
	t.Cleanup(logging.InitDefault)

	root := sampleDir(t)
	m := loadedModel(t, root, WithJournal(sl))
	if err := m.Rename(m.RowOf("a.txt"), "B.txt"); err == nil {
		t.Fatal("expected rename onto existing file to fail")
	}
	_ = m.Remove([]string{"a.txt"})

	st := sl.Stats()
	if st.Renames != 1 || st.RenameFailures != 1 {
		t.Errorf("unexpected rename counters %+v", st)
	}
	if st.Removals != 1 || st.RemovalFailures != 0 {
		t.Errorf("unexpected removal counters %+v", st)
	}
	if st.Loads != 2 {
		t.Errorf("expected 2 loads, got %d", st.Loads)
	}

	if err := sl.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := sl.Write([]byte("late")); err == nil {
		t.Error("write after close should fail")
	}

	content := readGzip(t, sl.Path())
	for _, want := range []string{"rename failed", "session summary", `"renames":1`, `"rename_failures":1`} {
		if !strings.Contains(content, want) {
			t.Errorf("session log is missing %q", want)
		}
	}
	if !strings.Contains(mirror.String(), "session summary") {
		t.Error("mirror did not receive the summary")
	}
}

func TestSessionLogRetention(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "session_2020-01-01_00-00-00.000.log.gz")
	recent := filepath.Join(dir, "session_2020-01-02_00-00-00.000.log.gz")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, unrelated} {
		writeFile(t, p, "x")
	}

	past := time.Now().AddDate(0, 0, -30)
	for _, p := range []string{old, unrelated} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	sl, err := NewSessionLog(dir, 14, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer sl.Close()

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired session log was kept")
	}
	for _, p := range []string{recent, unrelated, sl.Path()} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should exist: %v", p, err)
		}
	}
}

func TestSessionLogCountsLoadFailures(t *testing.T) {
	sl, err := NewSessionLog(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer sl.Close()

	m := New(WithJournal(sl))
	_ = m.Load(filepath.Join(t.TempDir(), "missing"))
	sl.Record(models.Operation{Op: models.OpLoad, OK: true})

	st := sl.Stats()
	if st.Loads != 2 || st.LoadFailures != 1 {
		t.Errorf("unexpected load counters %+v", st)
	}
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogefest/fbrowser/models"
)

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

// sampleDir builds the layout: .hidden, B.txt, a.txt, sub/
func sampleDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden"), "secret")
	writeFile(t, filepath.Join(root, "B.txt"), "bee")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	mkdir(t, filepath.Join(root, "sub"))
	return root
}

// loadedModel returns a model with dir already loaded.
func loadedModel(t *testing.T, dir string, opts ...Option) *Model {
	t.Helper()
	m := New(opts...)
	if err := m.Load(dir); err != nil {
		t.Fatalf("Load(%s) failed: %v", dir, err)
	}
	return m
}

func names(m *Model) []string {
	out := make([]string, m.RowCount())
	for i := range out {
		out[i], _ = m.Field(i, "fileName").(string)
	}
	return out
}

// eventRecorder collects model events.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) listen(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// journalRecorder is an in-memory Journal.
type journalRecorder struct {
	ops []models.Operation
}

func (j *journalRecorder) Record(op models.Operation) {
	j.ops = append(j.ops, op)
}

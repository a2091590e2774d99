package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogefest/fbrowser/internal/logging"
)

func writeConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "fbrowser.yaml")
	writeFile(t, path, fmt.Sprintf(`
history:
  db_path: %s
log:
  dir: %s
  level: debug
%s`, filepath.Join(dir, "history.db"), filepath.Join(dir, "logs"), extra))
	return path
}

func TestBootstrap(t *testing.T) {
	work := t.TempDir()
	var mirror bytes.Buffer

	rt, err := Bootstrap(writeConfig(t, work, ""), &mirror)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	t.Cleanup(logging.InitDefault)
	t.Cleanup(func() { rt.Close() })

	if rt.History == nil || rt.Session == nil || rt.Model == nil {
		t.Fatalf("runtime not fully built: %+v", rt)
	}

	root := sampleDir(t)
	if err := rt.Model.Load(root); err != nil {
		t.Fatal(err)
	}
	if got := rt.StartPath(""); got != root {
		t.Errorf("expected last visited %s, got %s", root, got)
	}
	if got := rt.StartPath("/explicit"); got != "/explicit" {
		t.Errorf("explicit path should win, got %s", got)
	}
	if rt.Session.Stats().Loads != 1 {
		t.Errorf("session journal not attached")
	}
	if !strings.Contains(mirror.String(), "runtime ready") {
		t.Error("mirror did not receive log output")
	}

	sessionPath := rt.Session.Path()
	if err := rt.Close(); err != nil {
		t.Fatal(err)
	}
	if rt.Session != nil || rt.History != nil {
		t.Error("Close should release services")
	}
	if _, err := os.Stat(sessionPath); err != nil {
		t.Errorf("session log missing after close: %v", err)
	}
}

func TestBootstrapWithoutServices(t *testing.T) {
	work := t.TempDir()
	path := filepath.Join(work, "fbrowser.yaml")
	writeFile(t, path, `
browser:
  start_path: /configured
history:
  enabled: false
log:
  dir: ""
`)

	var mirror bytes.Buffer
	rt, err := Bootstrap(path, &mirror)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(logging.InitDefault)
	t.Cleanup(func() { rt.Close() })

	if rt.History != nil || rt.Session != nil {
		t.Error("disabled services were created")
	}
	if got := rt.StartPath(""); got != "/configured" {
		t.Errorf("expected configured start path, got %s", got)
	}
}

func TestStartPathFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	path := filepath.Join(work, "fbrowser.yaml")
	writeFile(t, path, "history:\n  enabled: false\nlog:\n  dir: \"\"\n")

	rt, err := Bootstrap(path, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(logging.InitDefault)
	t.Cleanup(func() { rt.Close() })

	if got := rt.StartPath(""); got != home {
		t.Errorf("expected home %s, got %s", home, got)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/ogefest/fbrowser/internal/metrics"
	"github.com/ogefest/fbrowser/models"
)

func populate(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	for i := 0; i < n; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("file%03d.txt", i)), "x")
	}
	writeFile(t, filepath.Join(root, ".hidden"), "x")
	return root
}

func TestScanBatches(t *testing.T) {
	root := populate(t, 23)

	var batches []Batch
	for b := range ScanBatches(context.Background(), root, 5) {
		batches = append(batches, b)
	}

	if len(batches) == 0 {
		t.Fatal("expected batches")
	}
	header := batches[0]
	if header.Dir != root || len(header.Entries) != 0 || header.Err != nil {
		t.Errorf("unexpected header batch %+v", header)
	}

	var seen []string
	for _, b := range batches[1:] {
		if b.Err != nil {
			t.Fatalf("unexpected error batch: %v", b.Err)
		}
		if len(b.Entries) > 5 {
			t.Errorf("batch of %d entries exceeds size 5", len(b.Entries))
		}
		for _, e := range b.Entries {
			seen = append(seen, e.Name)
		}
	}

	if len(seen) != 23 {
		t.Fatalf("expected 23 entries, got %d", len(seen))
	}
	for _, name := range seen {
		if name == ".hidden" {
			t.Error("hidden entry delivered")
		}
	}
}

func TestScanBatchesMissingDirectory(t *testing.T) {
	var batches []Batch
	for b := range ScanBatches(context.Background(), filepath.Join(t.TempDir(), "gone"), 5) {
		batches = append(batches, b)
	}

	if len(batches) != 1 {
		t.Fatalf("expected a single error batch, got %d", len(batches))
	}
	if !errors.Is(batches[0].Err, ErrPathUnavailable) {
		t.Errorf("expected ErrPathUnavailable, got %v", batches[0].Err)
	}
}

func TestScanBatchesStopsOnCancel(t *testing.T) {
	root := populate(t, 40)
	ctx, cancel := context.WithCancel(context.Background())

	ch := ScanBatches(ctx, root, 1)
	<-ch
	cancel()

	// the producer must close the channel instead of blocking forever
	for range ch {
	}
}

func TestAccumulator(t *testing.T) {
	var acc Accumulator
	if err := acc.Add(Batch{Dir: "/tmp"}); err != nil {
		t.Fatal(err)
	}
	if err := acc.Add(Batch{Dir: "/tmp", Entries: []models.DirectoryEntry{{Name: "a"}}}); err != nil {
		t.Fatal(err)
	}
	if acc.Dir != "/tmp" || len(acc.Entries) != 1 {
		t.Errorf("unexpected accumulator state %+v", acc)
	}

	boom := errors.New("boom")
	if err := acc.Add(Batch{Err: boom}); !errors.Is(err, boom) {
		t.Errorf("expected batch error, got %v", err)
	}
}

// loadDurationSamples scrapes how many load durations have been observed.
func loadDurationSamples(t *testing.T) float64 {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "fbrowser_load_duration_seconds_count "); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				t.Fatalf("invalid sample count %q", v)
			}
			return n
		}
	}
	return 0
}

func TestLoadDurationSamples(t *testing.T) {
	root := populate(t, 5)

	t.Run("commit observes nothing", func(t *testing.T) {
		before := loadDurationSamples(t)
		m := New()
		if err := m.Commit(root, nil); err != nil {
			t.Fatal(err)
		}
		if got := loadDurationSamples(t) - before; got != 0 {
			t.Errorf("expected no duration sample from Commit, got %v", got)
		}
	})

	t.Run("background load observes once", func(t *testing.T) {
		before := loadDurationSamples(t)
		m := New()
		if err := m.LoadBatches(context.Background(), root, 2); err != nil {
			t.Fatal(err)
		}
		if got := loadDurationSamples(t) - before; got != 1 {
			t.Errorf("expected 1 duration sample, got %v", got)
		}
	})
}

func TestLoadBatchesMatchesLoad(t *testing.T) {
	root := populate(t, 17)
	mkdir(t, filepath.Join(root, "zdir"))
	mkdir(t, filepath.Join(root, "Adir"))

	direct := loadedModel(t, root)

	m := New()
	rec := &eventRecorder{}
	m.Subscribe(rec.listen)
	if err := m.LoadBatches(context.Background(), root, 4); err != nil {
		t.Fatalf("LoadBatches failed: %v", err)
	}

	if !reflect.DeepEqual(names(m), names(direct)) {
		t.Errorf("background scan order differs:\n%v\n%v", names(m), names(direct))
	}
	if m.Path() != root {
		t.Errorf("expected path %s, got %s", root, m.Path())
	}
	if rec.count(EventListingChanged) != 1 || rec.count(EventPathChanged) != 1 {
		t.Errorf("expected one path and one listing event, got %+v", rec.events)
	}

	got := names(m)
	if got[0] != "Adir" || got[1] != "zdir" {
		t.Errorf("expected directories first, got %v", got)
	}
}

func TestLoadBatchesFailureKeepsState(t *testing.T) {
	root := sampleDir(t)
	m := loadedModel(t, root)
	before := names(m)

	rec := &eventRecorder{}
	m.Subscribe(rec.listen)

	err := m.LoadBatches(context.Background(), filepath.Join(root, "missing"), 10)
	if !errors.Is(err, ErrPathUnavailable) {
		t.Fatalf("expected ErrPathUnavailable, got %v", err)
	}
	if !reflect.DeepEqual(names(m), before) || m.Path() != root {
		t.Error("failed scan modified the model")
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no events, got %d", len(rec.events))
	}
}

func TestLoadBatchesCancelled(t *testing.T) {
	root := sampleDir(t)
	m := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.LoadBatches(ctx, root, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.RowCount() != 0 || m.Path() != "" {
		t.Error("cancelled scan committed a listing")
	}
}

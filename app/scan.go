package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/internal/metrics"
	"github.com/ogefest/fbrowser/models"
)

const DefaultBatchSize = 50

// Batch is one step of a background scan. The first batch of every scan
// carries Dir and no entries; a batch with Err ends the scan.
type Batch struct {
	Dir     string
	Entries []models.DirectoryEntry
	Err     error
}

// ScanBatches reads path in a background goroutine and delivers its
// non-hidden entries, unsorted, at most size at a time. The channel is closed
// when the directory is exhausted, on error, or when ctx is done.
func ScanBatches(ctx context.Context, path string, size int) <-chan Batch {
	if size <= 0 {
		size = DefaultBatchSize
	}
	ch := make(chan Batch, 4)

	go func() {
		defer close(ch)

		dir, f, err := openDirectory(path)
		if err != nil {
			send(ctx, ch, Batch{Err: err})
			return
		}
		defer f.Close()

		if !send(ctx, ch, Batch{Dir: dir}) {
			return
		}

		for {
			dirEntries, err := f.ReadDir(size)
			if len(dirEntries) > 0 {
				if !send(ctx, ch, Batch{Dir: dir, Entries: snapshotEntries(dir, dirEntries)}) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				send(ctx, ch, Batch{Dir: dir, Err: &OpError{Op: models.OpLoad, Path: dir, Kind: ErrPathUnavailable, Err: err}})
				return
			}
		}
	}()

	return ch
}

func send(ctx context.Context, ch chan<- Batch, b Batch) bool {
	select {
	case ch <- b:
		return true
	case <-ctx.Done():
		return false
	}
}

// Accumulator collects the batches of one scan on the consumer side.
type Accumulator struct {
	Dir     string
	Entries []models.DirectoryEntry
}

// Add appends b, or returns its error.
func (a *Accumulator) Add(b Batch) error {
	if b.Err != nil {
		return b.Err
	}
	if b.Dir != "" {
		a.Dir = b.Dir
	}
	a.Entries = append(a.Entries, b.Entries...)
	return nil
}

// LoadBatches is Load driven by a background scan: the directory is read by
// ScanBatches while this goroutine gathers the batches, and the listing is
// committed only once the scan has finished. Cancelling ctx abandons the
// scan and leaves the model untouched.
func (m *Model) LoadBatches(ctx context.Context, path string, size int) error {
	start := time.Now()
	var acc Accumulator

	for b := range ScanBatches(ctx, path, size) {
		if err := acc.Add(b); err != nil {
			metrics.RecordLoad(false, 0)
			metrics.ObserveLoadDuration(time.Since(start))
			m.record(models.Operation{Op: models.OpLoad, Path: path, Error: err.Error()})
			logging.L().Warn("failed to load directory", logging.String("path", path), logging.Err(err))
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if acc.Dir == "" {
		return &OpError{Op: models.OpLoad, Path: path, Kind: ErrPathUnavailable, Err: errors.New("scan ended without result")}
	}

	if err := m.Commit(acc.Dir, acc.Entries); err != nil {
		return err
	}
	metrics.ObserveLoadDuration(time.Since(start))
	return nil
}

package app

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

const sessionLogPattern = "session_*.log.gz"

// SessionLog is a gzip compressed log file for one run of the browser. It
// is used as the output of the structured logger and as a model Journal
// counting the commands of the session.
type SessionLog struct {
	file     *os.File
	gzWriter *gzip.Writer
	out      io.Writer
	mu       sync.Mutex
	closed   bool

	startTime time.Time
	logPath   string

	loads           int64
	loadFailures    int64
	removals        int64
	removalFailures int64
	renames         int64
	renameFailures  int64
}

// SessionStats are the command counters of a session.
type SessionStats struct {
	Loads           int64
	LoadFailures    int64
	Removals        int64
	RemovalFailures int64
	Renames         int64
	RenameFailures  int64
}

// NewSessionLog creates a new log file in dir. Logs older than
// retentionDays are removed first. When mirror is not nil every entry is
// written to it as well.
func NewSessionLog(dir string, retentionDays int, mirror io.Writer) (*SessionLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if retentionDays > 0 {
		cleanupOldLogs(dir, retentionDays)
	}

	start := time.Now()
	logPath := filepath.Join(dir, fmt.Sprintf("session_%s.log.gz", start.Format("2006-01-02_15-04-05.000")))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	gzWriter := gzip.NewWriter(file)
	var out io.Writer = gzWriter
	if mirror != nil {
		out = io.MultiWriter(gzWriter, mirror)
	}

	return &SessionLog{
		file:      file,
		gzWriter:  gzWriter,
		out:       out,
		startTime: start,
		logPath:   logPath,
	}, nil
}

// cleanupOldLogs removes session logs older than retentionDays
func cleanupOldLogs(logDir string, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	matches, err := filepath.Glob(filepath.Join(logDir, sessionLogPattern))
	if err != nil {
		logging.L().Warn("failed to find old logs", logging.Err(err))
		return
	}

	for _, logFile := range matches {
		info, err := os.Stat(logFile)
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(logFile); err != nil {
				logging.L().Warn("failed to remove old log", logging.String("file", logFile), logging.Err(err))
			}
		}
	}
}

func (sl *SessionLog) Write(p []byte) (int, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.closed {
		return 0, os.ErrClosed
	}
	return sl.out.Write(p)
}

// Sync flushes compressed data to the file.
func (sl *SessionLog) Sync() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.closed {
		return nil
	}
	return sl.gzWriter.Flush()
}

// Record implements Journal.
func (sl *SessionLog) Record(op models.Operation) {
	switch op.Op {
	case models.OpLoad:
		atomic.AddInt64(&sl.loads, 1)
		if !op.OK {
			atomic.AddInt64(&sl.loadFailures, 1)
		}
	case models.OpRemove:
		atomic.AddInt64(&sl.removals, 1)
		if !op.OK {
			atomic.AddInt64(&sl.removalFailures, 1)
		}
	case models.OpRename:
		atomic.AddInt64(&sl.renames, 1)
		if !op.OK {
			atomic.AddInt64(&sl.renameFailures, 1)
		}
	}
}

// Stats returns the current counters.
func (sl *SessionLog) Stats() SessionStats {
	return SessionStats{
		Loads:           atomic.LoadInt64(&sl.loads),
		LoadFailures:    atomic.LoadInt64(&sl.loadFailures),
		Removals:        atomic.LoadInt64(&sl.removals),
		RemovalFailures: atomic.LoadInt64(&sl.removalFailures),
		Renames:         atomic.LoadInt64(&sl.renames),
		RenameFailures:  atomic.LoadInt64(&sl.renameFailures),
	}
}

// Path returns the path to the current log file
func (sl *SessionLog) Path() string {
	return sl.logPath
}

// Close logs the session summary and closes the file.
func (sl *SessionLog) Close() error {
	st := sl.Stats()
	logging.L().Info("session summary",
		logging.Duration("duration", time.Since(sl.startTime)),
		logging.Int64("loads", st.Loads),
		logging.Int64("load_failures", st.LoadFailures),
		logging.Int64("removals", st.Removals),
		logging.Int64("removal_failures", st.RemovalFailures),
		logging.Int64("renames", st.Renames),
		logging.Int64("rename_failures", st.RenameFailures),
	)
	_ = logging.Sync()

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.closed {
		return nil
	}
	sl.closed = true

	if err := sl.gzWriter.Close(); err != nil {
		sl.file.Close()
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return sl.file.Close()
}

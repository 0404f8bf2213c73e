// Package workspace owns the private scratch directory that all download
// jobs write into. Every file beneath it was produced by exactly one job and
// carries that job's fingerprinted base name, so per-file cleanup can never
// touch another job's output. Cleanup is best-effort throughout: failures
// are logged, never escalated. Orphaned partial files left behind by timed
// out jobs are not purged eagerly; RemoveAll reclaims them at shutdown, and
// fingerprinted names keep them from colliding with later jobs.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"melodygram/internal/observability"
)

const dirPrefix = "melodygram-"

// Manager owns one scratch directory for the life of the process.
type Manager struct {
	log     *slog.Logger
	metrics *observability.Metrics
	dir     string
}

// New allocates a private, uniquely named scratch directory under parent.
// An empty parent means the OS temp directory. The random token in the name
// keeps concurrently running instances from colliding.
func New(log *slog.Logger, metrics *observability.Metrics, parent string) (*Manager, error) {
	if parent == "" {
		parent = os.TempDir()
	}

	dir := filepath.Join(parent, dirPrefix+uuid.NewString())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	log = log.With(slog.String("package", "workspace"), slog.String("dir", dir))
	log.Info("workspace created")

	return &Manager{
		log:     log,
		metrics: metrics,
		dir:     dir,
	}, nil
}

// Dir returns the workspace directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// CleanupFile removes one file if present. Missing files and removal
// failures are logged and swallowed. Paths outside the workspace are
// refused: no job may reclaim what it did not produce here.
func (m *Manager) CleanupFile(path string) {
	if !strings.HasPrefix(filepath.Clean(path), m.dir+string(filepath.Separator)) {
		m.log.Warn("refusing to delete file outside workspace", slog.String("path", path))

		return
	}

	err := os.Remove(path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Warn("cleanup file", slog.String("path", path), slog.Any("error", err))
		}

		return
	}

	m.metrics.RecordCleanupFiles(1)
	m.log.Debug("file cleaned up", slog.String("path", path))
}

// CleanupAll removes every file currently in the workspace and then the
// directory itself. Safe to call repeatedly.
func (m *Manager) CleanupAll() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Warn("read workspace", slog.Any("error", err))
		}

		return
	}

	removed := 0

	for _, entry := range entries {
		path := filepath.Join(m.dir, entry.Name())

		if err := os.RemoveAll(path); err != nil {
			m.log.Warn("cleanup entry", slog.String("path", path), slog.Any("error", err))

			continue
		}

		removed++
	}

	m.metrics.RecordCleanupFiles(removed)

	if err := os.Remove(m.dir); err != nil && !os.IsNotExist(err) {
		// A concurrent write can keep the directory alive; the OS temp
		// garbage collection picks it up eventually.
		m.log.Warn("remove workspace dir", slog.Any("error", err))

		return
	}

	m.log.Info("workspace cleaned up", slog.Int("removed", removed))
}

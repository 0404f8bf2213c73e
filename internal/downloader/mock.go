package downloader

import (
	"context"
	"os"
	"strings"
	"time"

	"melodygram/internal/consts"
	"melodygram/internal/errs"
)

// Mock is a test backend. It waits Delay (interruptibly), then either fails
// with Err, reports no results, or writes a small file at the template base
// with Ext and returns it as the declared path when DeclarePath is set.
type Mock struct {
	Delay       time.Duration
	Err         error
	NoResults   bool
	Ext         string
	DeclarePath bool
}

// Name implements Backend.
func (m *Mock) Name() string { return consts.BackendMock }

// Fetch implements Backend.
func (m *Mock) Fetch(ctx context.Context, _ string, _ ExtractionConfig, outputTemplate string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}

	if m.NoResults {
		return "", errs.ErrNoResults
	}

	ext := m.Ext
	if ext == "" {
		ext = ".m4a"
	}

	path := strings.TrimSuffix(outputTemplate, ".%(ext)s") + ext

	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		return "", err
	}

	if m.DeclarePath {
		return path, nil
	}

	return "", nil
}

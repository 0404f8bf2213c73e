package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"melodygram/internal/config"
	"melodygram/internal/entity"
	"melodygram/internal/errs"
	"melodygram/internal/observability"
)

// Executor runs extraction jobs against a Backend. Each job occupies one
// slot of a bounded worker pool for its duration, so concurrent collection
// downloads cannot stampede the extraction tool, and is raced against the
// job's wall-clock deadline.
type Executor struct {
	log       *slog.Logger
	backend   Backend
	metrics   *observability.Metrics
	extractor config.Extractor
	slots     chan struct{}
}

// NewExecutor creates an executor with cfg.Job.Workers pool slots.
func NewExecutor(log *slog.Logger, cfg *config.Config, backend Backend, metrics *observability.Metrics) *Executor {
	return &Executor{
		log:       log.With(slog.String("package", "downloader"), slog.String("backend", backend.Name())),
		backend:   backend,
		metrics:   metrics,
		extractor: cfg.Extractor,
		slots:     make(chan struct{}, cfg.Job.Workers),
	}
}

type fetchResult struct {
	declared string
	err      error
}

// Execute performs one search-and-download job and returns the path of the
// produced file. The backend call is blocking and cannot be interrupted
// once dispatched; on deadline expiry the job is abandoned, its eventual
// result discarded, and ErrTimeout returned. A partially written file may
// remain in the workspace; the workspace owner reclaims it at shutdown.
//
// Failures map onto the taxonomy sentinels in the errs package:
// ErrNoResults, ErrTimeout, ErrFileNotFound, ErrBackend.
func (e *Executor) Execute(ctx context.Context, job entity.ExtractionJob) (string, error) {
	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		return "", fmt.Errorf("acquire worker slot: %w", ctx.Err())
	}
	defer func() { <-e.slots }()

	log := e.log.With("job", job)

	e.metrics.RecordDownloadStarted()
	stopTimer := e.metrics.DownloadTimer()
	defer stopTimer()

	runCtx, cancel := context.WithDeadline(ctx, job.Deadline)
	defer cancel()

	cfg := BuildConfig(job.Quality, e.extractor)
	query := job.Track.SearchQuery()

	log.Info("download started", slog.String("query", query), slog.String("format", cfg.Format))

	// Buffered so the abandoned worker can always deliver and exit.
	resCh := make(chan fetchResult, 1)

	go func() {
		declared, err := e.backend.Fetch(runCtx, query, cfg, job.OutputTemplate)
		resCh <- fetchResult{declared: declared, err: err}
	}()

	var res fetchResult

	select {
	case res = <-resCh:
	case <-runCtx.Done():
		err := e.timeoutError(runCtx.Err())
		log.Warn("download abandoned", slog.Any("error", err))
		e.metrics.RecordDownloadFailed(classifyFailure(err))

		return "", err
	}

	if res.err != nil {
		err := res.err
		if errors.Is(err, context.DeadlineExceeded) {
			err = errs.ErrTimeout
		}

		log.Warn("download failed", slog.Any("error", err))
		e.metrics.RecordDownloadFailed(classifyFailure(err))

		return "", err
	}

	path, err := ResolveOutput(job.OutputBase, res.declared)
	if err != nil {
		log.Warn("output not found", slog.String("declared", res.declared))
		e.metrics.RecordDownloadFailed(classifyFailure(err))

		return "", err
	}

	e.metrics.RecordDownloadCompleted()
	log.Info("download finished", slog.String("path", path))

	return path, nil
}

func (e *Executor) timeoutError(ctxErr error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return errs.ErrTimeout
	}

	return ctxErr
}

// Package service orchestrates download jobs for the chat front-end. It
// turns catalog entities into extraction jobs, runs them through the
// executor, tags and delivers the results, and reclaims workspace files.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"melodygram/internal/config"
	"melodygram/internal/entity"
	"melodygram/internal/id3"
	"melodygram/internal/observability"
	"melodygram/internal/workspace"
)

// Executor runs one extraction job to completion.
type Executor interface {
	Execute(ctx context.Context, job entity.ExtractionJob) (string, error)
}

// Notifier receives delivery callbacks. Progress is advisory and carries no
// error; Deliver hands the finished file to the user and its failure counts
// as a failed track.
type Notifier interface {
	Progress(ctx context.Context, p entity.Progress)
	Deliver(ctx context.Context, path string, track entity.Track) error
}

// Service is the download orchestrator.
type Service struct {
	log      *slog.Logger
	cfg      *config.Config
	executor Executor
	ws       *workspace.Manager
	metrics  *observability.Metrics
}

// New creates the download orchestrator.
func New(log *slog.Logger, cfg *config.Config, executor Executor, ws *workspace.Manager, metrics *observability.Metrics) *Service {
	return &Service{
		log:      log.With(slog.String("package", "service")),
		cfg:      cfg,
		executor: executor,
		ws:       ws,
		metrics:  metrics,
	}
}

// DownloadTrack downloads one track, tags it when the output format allows,
// and delivers it through the notifier. The workspace file is removed after
// delivery regardless of the delivery outcome.
func (s *Service) DownloadTrack(ctx context.Context, track entity.Track, quality entity.Quality, notifier Notifier) error {
	job := entity.NewExtractionJob(track, quality, s.ws.Dir(), s.cfg.Job.Timeout)

	path, err := s.executor.Execute(ctx, job)
	if err != nil {
		return fmt.Errorf("execute job: %w", err)
	}

	if id3.Taggable(path) {
		if err := id3.Tag(path, track); err != nil {
			// Untagged audio still plays; deliver it anyway.
			s.log.Warn("tagging failed", slog.Any("track", track), slog.Any("error", err))
		}
	}

	defer s.ws.CleanupFile(path)

	if err := notifier.Deliver(ctx, path, track); err != nil {
		return fmt.Errorf("deliver: %w", err)
	}

	return nil
}

// DownloadCollection downloads every track of a collection in order, one at
// a time, under a single shared quality tier. A failed track never aborts
// the run: each track gets its attempt and the notifier hears about every
// outcome. The returned summary counts the successes.
func (s *Service) DownloadCollection(ctx context.Context, coll entity.Collection, quality entity.Quality, notifier Notifier) entity.Summary {
	log := s.log.With(slog.Any("collection", coll), slog.String("quality", string(quality)))
	log.Info("collection download started")

	summary := entity.Summary{Total: len(coll.Tracks)}

	for i, track := range coll.Tracks {
		s.metrics.RecordCollectionTrack()

		err := s.DownloadTrack(ctx, track, quality, notifier)
		if err != nil {
			log.Warn("collection track failed",
				slog.Int("position", i+1), slog.Any("track", track), slog.Any("error", err))
		} else {
			summary.Succeeded++
		}

		notifier.Progress(ctx, entity.Progress{
			Collection: coll,
			Track:      track,
			Current:    i + 1,
			Total:      summary.Total,
			Succeeded:  summary.Succeeded,
		})

		// A canceled context would fail every remaining track the same
		// way; stop burning worker slots on them.
		if ctx.Err() != nil {
			log.Warn("collection download interrupted", slog.Int("position", i+1))

			break
		}
	}

	s.metrics.RecordCollectionCompleted()
	log.Info("collection download finished",
		slog.Int("succeeded", summary.Succeeded), slog.Int("total", summary.Total))

	return summary
}

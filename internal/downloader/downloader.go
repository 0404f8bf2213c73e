// Package downloader turns track metadata plus a quality preference into a
// locally available audio file. The Executor submits the blocking
// search-and-fetch call of a Backend to a bounded worker pool, enforces a
// wall-clock ceiling, and reconciles the declared output path with whatever
// container the backend actually chose.
package downloader

import (
	"context"
	"errors"

	"melodygram/internal/errs"
)

// Backend performs the blocking "search top result then download" operation
// of an external extraction tool. Implementations write at most one file
// beneath the output template's directory and return the path the tool
// claims to have written, which may carry a different extension than
// templated, or be empty when the tool did not say.
type Backend interface {
	Name() string
	Fetch(ctx context.Context, query string, cfg ExtractionConfig, outputTemplate string) (declared string, err error)
}

func classifyFailure(err error) string {
	switch {
	case errors.Is(err, errs.ErrNoResults):
		return "no_results"
	case errors.Is(err, errs.ErrTimeout):
		return "timeout"
	case errors.Is(err, errs.ErrFileNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "backend"
	}
}

// Package entity defines the core entities used in the application.
package entity

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"melodygram/pkg/fsname"
	"melodygram/pkg/gen"
)

// Quality is an audio quality tier.
type Quality string

// The three quality tiers. Anything unrecognized normalizes to QualityMedium.
const (
	// QualityLow caps streams at 128 kbps.
	QualityLow Quality = "low"
	// QualityMedium caps streams at 192 kbps. This is the default tier.
	QualityMedium Quality = "medium"
	// QualityHigh takes the best available stream.
	QualityHigh Quality = "high"
)

// ParseQuality normalizes a user-supplied quality string to a tier.
// It accepts tier names and the legacy bitrate button values and never
// fails: malformed input falls back to QualityMedium.
func ParseQuality(s string) Quality {
	switch s {
	case string(QualityLow), "128":
		return QualityLow
	case string(QualityHigh), "320", "best":
		return QualityHigh
	default:
		return QualityMedium
	}
}

// Label returns the user-facing name of the tier.
func (q Quality) Label() string {
	switch q {
	case QualityLow:
		return "128 kbps"
	case QualityHigh:
		return "320 kbps"
	default:
		return "192 kbps"
	}
}

// Track identifies one playable unit from the catalog. Immutable once
// constructed; the download pipeline only ever reads it.
type Track struct {
	ID             string
	Name           string
	Artist         string
	Album          string
	DurationMillis int64
}

// SearchQuery builds the extraction search term for the track.
func (t Track) SearchQuery() string {
	return gen.Normalize(t.Name + " " + t.Artist)
}

// DurationSeconds returns the track duration in whole seconds.
func (t Track) DurationSeconds() int {
	return int(t.DurationMillis / 1000)
}

// DurationString formats the duration as M:SS.
func (t Track) DurationString() string {
	secs := t.DurationSeconds()

	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (t Track) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", t.ID),
		slog.String("name", t.Name),
		slog.String("artist", t.Artist),
		slog.Int64("duration_ms", t.DurationMillis),
	)
}

// Collection is an ordered batch of tracks downloaded under one shared
// quality tier (a playlist or an album). Order is meaningful: tracks are
// processed and reported strictly in sequence.
type Collection struct {
	ID     string
	Name   string
	Owner  string
	Kind   string
	Tracks []Track
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (c Collection) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.String("name", c.Name),
		slog.String("kind", c.Kind),
		slog.Int("tracks", len(c.Tracks)),
	)
}

// ExtractionJob is the ephemeral unit of work handed to the download
// executor. Created fresh per attempt and discarded once resolved.
type ExtractionJob struct {
	Track   Track
	Quality Quality
	// OutputBase is the fingerprinted output path without extension.
	OutputBase string
	// OutputTemplate is OutputBase with the extraction tool's extension
	// placeholder appended.
	OutputTemplate string
	// Deadline is the wall-clock instant after which the job is abandoned.
	Deadline time.Time
}

// NewExtractionJob derives the fingerprinted output paths for a track and
// stamps the job deadline. The base name embeds the track name and artist
// for readability and an 8-hex fingerprint of the search query for
// disambiguation, so naming is idempotent per track and collision-resistant
// across tracks. The display portion is sanitized and capped first and the
// fingerprint appended after, so a long title can never truncate it away.
func NewExtractionJob(track Track, quality Quality, workDir string, timeout time.Duration) ExtractionJob {
	suffix := fmt.Sprintf(" [%s]", gen.Fingerprint(track.SearchQuery()))
	display := fsname.SanitizeN(fmt.Sprintf("%s - %s", track.Name, track.Artist),
		fsname.MaxLen-len(suffix))

	outputBase := filepath.Join(workDir, display+suffix)

	return ExtractionJob{
		Track:          track,
		Quality:        quality,
		OutputBase:     outputBase,
		OutputTemplate: outputBase + ".%(ext)s",
		Deadline:       time.Now().Add(timeout),
	}
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (j ExtractionJob) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("track", j.Track),
		slog.String("quality", string(j.Quality)),
		slog.String("output_base", j.OutputBase),
		slog.Time("deadline", j.Deadline),
	)
}

// Progress reports the state of a collection download after one attempt.
type Progress struct {
	Collection Collection
	Track      Track
	Current    int
	Total      int
	Succeeded  int
}

// Summary is the final outcome of a collection download.
type Summary struct {
	Succeeded int
	Total     int
}

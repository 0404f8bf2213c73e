package downloader

import (
	"time"

	"melodygram/internal/config"
	"melodygram/internal/consts"
	"melodygram/internal/entity"
)

// ExtractionConfig is the concrete parameter set handed to the extraction
// tool for one job: an ordered format fallback chain plus fixed
// network-resilience settings tuned for raw audio (no post-processing, no
// side artifacts).
type ExtractionConfig struct {
	// Format is the source-selection expression, an ordered fallback chain.
	Format string
	// SocketTimeout bounds each network operation of the tool.
	SocketTimeout time.Duration
	// ChunkSize is the chunked-transfer size, e.g. "10M".
	ChunkSize string
	// Retries is the connection retry count.
	Retries int
	// FragmentRetries is the per-fragment retry count.
	FragmentRetries int
}

// BuildConfig maps a quality tier plus the configured network-resilience
// parameters to an ExtractionConfig. It is pure and has no failure mode:
// any tier outside the three known ones resolves to the medium format
// chain, and unset parameters fall back to the fixed defaults.
func BuildConfig(quality entity.Quality, ext config.Extractor) ExtractionConfig {
	cfg := ExtractionConfig{
		Format:          consts.FormatChainBase,
		SocketTimeout:   ext.SocketTimeout,
		ChunkSize:       ext.ChunkSize,
		Retries:         ext.Retries,
		FragmentRetries: ext.FragmentRetries,
	}

	if cfg.SocketTimeout <= 0 {
		cfg.SocketTimeout = consts.DefaultSocketTimeout
	}

	if cfg.ChunkSize == "" {
		cfg.ChunkSize = consts.DefaultChunkSize
	}

	if cfg.Retries <= 0 {
		cfg.Retries = consts.DefaultRetries
	}

	if cfg.FragmentRetries <= 0 {
		cfg.FragmentRetries = consts.DefaultFragmentRetries
	}

	switch quality {
	case entity.QualityLow:
		cfg.Format = consts.FormatChainLow
	case entity.QualityHigh:
		cfg.Format = consts.FormatChainHigh
	default:
		cfg.Format = consts.FormatChainMedium
	}

	return cfg
}

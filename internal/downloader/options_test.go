package downloader_test

import (
	"testing"
	"time"

	"melodygram/internal/config"
	"melodygram/internal/downloader"
	"melodygram/internal/entity"
)

func defaultExtractor() config.Extractor {
	return config.Extractor{
		SocketTimeout:   20 * time.Second,
		ChunkSize:       "10M",
		Retries:         2,
		FragmentRetries: 2,
	}
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name       string
		quality    entity.Quality
		wantFormat string
	}{
		{name: "low", quality: entity.QualityLow, wantFormat: "bestaudio[abr<=128]/bestaudio"},
		{name: "medium", quality: entity.QualityMedium, wantFormat: "bestaudio[abr<=192]/bestaudio"},
		{name: "high", quality: entity.QualityHigh, wantFormat: "bestaudio/best"},
		{name: "unrecognizedFallsBackToMedium", quality: entity.Quality("flac-supreme"), wantFormat: "bestaudio[abr<=192]/bestaudio"},
		{name: "emptyFallsBackToMedium", quality: entity.Quality(""), wantFormat: "bestaudio[abr<=192]/bestaudio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := downloader.BuildConfig(tt.quality, defaultExtractor())

			if got.Format != tt.wantFormat {
				t.Errorf("got format %q, want %q", got.Format, tt.wantFormat)
			}

			if got.SocketTimeout != 20*time.Second {
				t.Errorf("got socket timeout %v, want 20s", got.SocketTimeout)
			}

			if got.ChunkSize != "10M" {
				t.Errorf("got chunk size %q, want 10M", got.ChunkSize)
			}

			if got.Retries != 2 || got.FragmentRetries != 2 {
				t.Errorf("got retries %d/%d, want 2/2", got.Retries, got.FragmentRetries)
			}
		})
	}
}

func TestBuildConfigHonorsOverrides(t *testing.T) {
	ext := config.Extractor{
		SocketTimeout:   45 * time.Second,
		ChunkSize:       "5M",
		Retries:         7,
		FragmentRetries: 3,
	}

	got := downloader.BuildConfig(entity.QualityMedium, ext)

	if got.SocketTimeout != 45*time.Second {
		t.Errorf("got socket timeout %v, want 45s", got.SocketTimeout)
	}

	if got.ChunkSize != "5M" {
		t.Errorf("got chunk size %q, want 5M", got.ChunkSize)
	}

	if got.Retries != 7 || got.FragmentRetries != 3 {
		t.Errorf("got retries %d/%d, want 7/3", got.Retries, got.FragmentRetries)
	}
}

func TestBuildConfigZeroValuesFallBack(t *testing.T) {
	got := downloader.BuildConfig(entity.QualityMedium, config.Extractor{})

	if got.SocketTimeout != 20*time.Second {
		t.Errorf("got socket timeout %v, want the 20s default", got.SocketTimeout)
	}

	if got.ChunkSize != "10M" {
		t.Errorf("got chunk size %q, want the 10M default", got.ChunkSize)
	}

	if got.Retries != 2 || got.FragmentRetries != 2 {
		t.Errorf("got retries %d/%d, want the 2/2 defaults", got.Retries, got.FragmentRetries)
	}
}

func TestBuildConfigDeterministic(t *testing.T) {
	a := downloader.BuildConfig(entity.QualityLow, defaultExtractor())
	b := downloader.BuildConfig(entity.QualityLow, defaultExtractor())

	if a != b {
		t.Fatalf("BuildConfig not deterministic: %+v vs %+v", a, b)
	}
}

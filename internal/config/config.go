// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	App        App
	Telegram   Telegram
	Spotify    Spotify
	Job        Job
	Extractor  Extractor
	Dir        Dir
	Metrics    Metrics
	DepManager DepManager
}

// App holds application-wide configuration.
type App struct {
	LogLevel string `env:"MELODYGRAM_APP_LOG_LEVEL" envDefault:"info"`
}

// Telegram holds chat transport configuration.
type Telegram struct {
	Token string `env:"MELODYGRAM_TELEGRAM_TOKEN"`
	// UpdateTimeout is the long-poll timeout in seconds.
	UpdateTimeout int  `env:"MELODYGRAM_TELEGRAM_UPDATE_TIMEOUT" envDefault:"30"`
	Debug         bool `env:"MELODYGRAM_TELEGRAM_DEBUG"          envDefault:"false"`
}

// Spotify holds catalog metadata provider configuration. The URL fields
// exist so tests can point the client at a local server.
type Spotify struct {
	ClientID     string `env:"MELODYGRAM_SPOTIFY_CLIENT_ID"`
	ClientSecret string `env:"MELODYGRAM_SPOTIFY_CLIENT_SECRET"`
	TokenURL     string `env:"MELODYGRAM_SPOTIFY_TOKEN_URL" envDefault:"https://accounts.spotify.com/api/token"`
	APIBaseURL   string `env:"MELODYGRAM_SPOTIFY_API_URL"   envDefault:"https://api.spotify.com/v1"`
}

// Job holds download job processing configuration.
type Job struct {
	Workers int           `env:"MELODYGRAM_JOB_WORKERS" envDefault:"2"`
	Timeout time.Duration `env:"MELODYGRAM_JOB_TIMEOUT" envDefault:"60s"`
}

// Extractor holds network-resilience parameters for the extraction tool.
type Extractor struct {
	SocketTimeout   time.Duration `env:"MELODYGRAM_EXTRACTOR_SOCKET_TIMEOUT"   envDefault:"20s"`
	ChunkSize       string        `env:"MELODYGRAM_EXTRACTOR_CHUNK_SIZE"       envDefault:"10M"`
	Retries         int           `env:"MELODYGRAM_EXTRACTOR_RETRIES"          envDefault:"2"`
	FragmentRetries int           `env:"MELODYGRAM_EXTRACTOR_FRAGMENT_RETRIES" envDefault:"2"`
}

// Dir holds directory paths for the workspace and the extraction tool cache.
type Dir struct {
	// WorkParent is where the private workspace directory is created.
	// Empty means the OS temp directory.
	WorkParent string `env:"MELODYGRAM_DIR_WORK_PARENT" envDefault:""`
	Cache      string `env:"MELODYGRAM_DIR_CACHE"       envDefault:"./data/cache"`
}

// SetAbsPaths converts all directory paths to absolute paths.
func (d *Dir) SetAbsPaths() error {
	var err error

	if d.WorkParent != "" {
		if d.WorkParent, err = filepath.Abs(d.WorkParent); err != nil {
			return fmt.Errorf("work parent: %w", err)
		}
	}

	if d.Cache, err = filepath.Abs(d.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

// Metrics holds the metrics listener configuration.
type Metrics struct {
	Enabled         bool          `env:"MELODYGRAM_METRICS_ENABLED"          envDefault:"true"`
	Addr            string        `env:"MELODYGRAM_METRICS_ADDR"             envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"MELODYGRAM_METRICS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DepManager holds binary dependency management configuration.
type DepManager struct {
	// BinsDir is the directory where binaries are stored.
	BinsDir string `env:"MELODYGRAM_DEPMANAGER_BINS_DIR" envDefault:"./bins"`
	// UseSystemBinaries indicates whether to use system-installed binaries
	// instead of downloading them.
	UseSystemBinaries bool `env:"MELODYGRAM_DEPMANAGER_USE_SYSTEM_BINARIES" envDefault:"false"`

	// ffmpeg binary URLs per platform.
	FFmpegLinuxARM64 string `env:"MELODYGRAM_DEPMANAGER_FFMPEG_LINUX_ARM64" envDefault:"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-linuxarm64-gpl.tar.xz"` //nolint:lll
	FFmpegLinuxAMD64 string `env:"MELODYGRAM_DEPMANAGER_FFMPEG_LINUX_AMD64" envDefault:"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-linux64-gpl.tar.xz"`    //nolint:lll
}

// SetAbsPaths converts the BinsDir path to an absolute path.
func (d *DepManager) SetAbsPaths() error {
	var err error
	if d.BinsDir, err = filepath.Abs(d.BinsDir); err != nil {
		return fmt.Errorf("bins dir: %w", err)
	}

	return nil
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{}

	err := env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	err = cfg.Dir.SetAbsPaths()
	if err != nil {
		return nil, fmt.Errorf("set absolute paths: %w", err)
	}

	err = cfg.DepManager.SetAbsPaths()
	if err != nil {
		return nil, fmt.Errorf("set dep manager absolute paths: %w", err)
	}

	return cfg, nil
}

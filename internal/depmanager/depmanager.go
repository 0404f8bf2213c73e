// Package depmanager provisions the external binaries the extraction
// backend needs. yt-dlp installation is delegated to its client library;
// ffmpeg and ffprobe are fetched as a platform tar.xz and unpacked into the
// bins directory.
package depmanager

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/ulikunitz/xz"

	"melodygram/internal/config"
	"melodygram/internal/errs"
)

const (
	downloadTimeout    = 10 * time.Minute
	filePermExecutable = 0o755
)

// ffmpegTargets are the files pulled out of the ffmpeg archive.
var ffmpegTargets = map[string]struct{}{
	"ffmpeg":  {},
	"ffprobe": {},
}

// Manager resolves and installs binary dependencies.
type Manager struct {
	log    *slog.Logger
	cfg    *config.Config
	client *http.Client

	ffmpegDir string
}

// New creates a dependency manager.
func New(log *slog.Logger, cfg *config.Config) *Manager {
	return &Manager{
		log: log.With(slog.String("package", "depmanager")),
		cfg: cfg,
		client: &http.Client{
			Timeout: downloadTimeout,
		},
	}
}

// Setup makes yt-dlp, ffmpeg, and ffprobe available, either by verifying
// system installations or by downloading them into the bins directory.
func (m *Manager) Setup(ctx context.Context) error {
	if m.cfg.DepManager.UseSystemBinaries {
		return m.setSystemBinaries()
	}

	return m.installAll(ctx)
}

// FFmpegDir returns the directory holding the ffmpeg and ffprobe binaries.
// Valid only after a successful Setup.
func (m *Manager) FFmpegDir() string {
	return m.ffmpegDir
}

func (m *Manager) setSystemBinaries() error {
	for _, name := range []string{"yt-dlp", "ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%w: %s not in PATH", errs.ErrBinaryNotFound, name)
		}
	}

	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("%w: ffmpeg not in PATH", errs.ErrBinaryNotFound)
	}

	m.ffmpegDir = filepath.Dir(path)
	m.log.Info("using system binaries", slog.String("ffmpeg_dir", m.ffmpegDir))

	return nil
}

func (m *Manager) installAll(ctx context.Context) error {
	binsDir := m.cfg.DepManager.BinsDir

	if err := os.MkdirAll(binsDir, filePermExecutable); err != nil {
		return fmt.Errorf("create bins directory: %w", err)
	}

	// The yt-dlp client library manages its own binary, including updates.
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}

	m.log.Info("yt-dlp ready")

	if m.ffmpegExists(binsDir) {
		m.ffmpegDir = binsDir
		m.log.Debug("ffmpeg already installed", slog.String("dir", binsDir))

		return nil
	}

	url, err := m.ffmpegURL()
	if err != nil {
		return err
	}

	m.log.Info("downloading ffmpeg, it may take some time...", slog.String("url", url))

	if err := m.downloadAndExtract(ctx, url, binsDir); err != nil {
		return fmt.Errorf("install ffmpeg: %w", err)
	}

	m.ffmpegDir = binsDir
	m.log.Info("ffmpeg ready", slog.String("dir", binsDir))

	return nil
}

func (m *Manager) ffmpegExists(binsDir string) bool {
	for name := range ffmpegTargets {
		if _, err := os.Stat(filepath.Join(binsDir, name)); err != nil {
			return false
		}
	}

	return true
}

func (m *Manager) ffmpegURL() (string, error) {
	if runtime.GOOS != "linux" {
		return "", fmt.Errorf("%w: %s/%s", errs.ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}

	switch runtime.GOARCH {
	case "arm64":
		return m.cfg.DepManager.FFmpegLinuxARM64, nil
	case "amd64":
		return m.cfg.DepManager.FFmpegLinuxAMD64, nil
	default:
		return "", fmt.Errorf("%w: %s/%s", errs.ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}
}

func (m *Manager) downloadAndExtract(ctx context.Context, url, destDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(destDir, "download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmpFile.Name()

	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return extractTarXZ(tmpPath, destDir, ffmpegTargets)
}

func extractTarXZ(archivePath, destDir string, targets map[string]struct{}) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return fmt.Errorf("create xz reader: %w", err)
	}

	tarReader := tar.NewReader(xzReader)
	extracted := 0

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		filename := filepath.Base(header.Name)
		if _, ok := targets[filename]; !ok {
			continue
		}

		destPath := filepath.Join(destDir, filename)

		outFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermExecutable)
		if err != nil {
			return fmt.Errorf("create dest file: %w", err)
		}

		_, err = io.Copy(outFile, tarReader)
		outFile.Close()

		if err != nil {
			return fmt.Errorf("extract file: %w", err)
		}

		extracted++

		if extracted == len(targets) {
			return nil
		}
	}

	if extracted == 0 {
		return fmt.Errorf("no target files found in archive")
	}

	return nil
}

package downloader

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"melodygram/internal/config"
	"melodygram/internal/consts"
	"melodygram/internal/errs"
	"melodygram/pkg/maths"
	"melodygram/pkg/ptr"
)

const searchPrefix = "ytsearch1:"

var (
	// reDeclaredPath matches plain file-path lines among the tool's
	// JSON-per-line stdout.
	reDeclaredPath = regexp.MustCompile(`(?i)^[^\{\[\n].*\.[a-z0-9]{1,6}$`)

	// changing this breaks ParseDeclaredPath.
	printAfterMove = "after_move:filepath"
)

// YTdlp is the yt-dlp extraction backend.
type YTdlp struct {
	log       *slog.Logger
	cacheDir  string
	ffmpegDir string
}

// NewYTdlp creates a yt-dlp backend. ffmpegDir may be empty when ffmpeg is
// resolvable from PATH.
func NewYTdlp(log *slog.Logger, cfg *config.Config, ffmpegDir string) *YTdlp {
	return &YTdlp{
		log:       log.With(slog.String("package", "downloader"), slog.String("backend", consts.BackendYTdlp)),
		cacheDir:  cfg.Dir.Cache,
		ffmpegDir: ffmpegDir,
	}
}

// Name implements Backend.
func (d *YTdlp) Name() string { return consts.BackendYTdlp }

// Fetch searches for the single top result of query and downloads its audio
// stream to the output template. The call blocks until the tool finishes or
// ctx expires.
func (d *YTdlp) Fetch(ctx context.Context, query string, cfg ExtractionConfig, outputTemplate string) (string, error) {
	command := ytdlp.New().
		CacheDir(d.cacheDir).
		Format(cfg.Format).
		SocketTimeout(cfg.SocketTimeout.Seconds()).
		HTTPChunkSize(cfg.ChunkSize).
		Retries(strconv.Itoa(cfg.Retries)).
		FragmentRetries(strconv.Itoa(cfg.FragmentRetries)).
		NoPlaylist().
		NoWriteSubs().
		NoWriteAutoSubs().
		NoWriteDescription().
		NoWriteInfoJSON().
		NoWriteThumbnail().
		PrintJSON().Print(printAfterMove).
		Output(outputTemplate)

	if d.ffmpegDir != "" {
		command = command.FFmpegLocation(d.ffmpegDir)
	}

	res, err := command.Run(ctx, searchPrefix+query)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		d.log.Error("ytdlp run", slog.String("query", query), slog.Any("error", err))

		return "", fmt.Errorf("%w: %v", errs.ErrBackend, err)
	}

	info, err := res.GetExtractedInfo()
	if err != nil {
		d.log.Warn("ytdlp get extracted info", slog.Any("error", err))
	}

	if len(info) == 0 {
		return "", errs.ErrNoResults
	}

	matched := info[0]
	d.log.Info("search matched",
		slog.String("query", query),
		slog.String("title", ptr.Deref(matched.Title)),
		slog.String("id", matched.ID),
		slog.Int("duration_s", maths.RoundFloat64ToInt(ptr.Deref(matched.Duration))),
	)

	return ParseDeclaredPath(res.Stdout), nil
}

// ParseDeclaredPath extracts the file path the tool printed after moving
// its output, if any, from a stdout mixing JSON lines and path lines. The
// last path line wins.
func ParseDeclaredPath(stdout string) string {
	var declared string

	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if reDeclaredPath.MatchString(line) {
			declared = line
		}
	}

	return declared
}

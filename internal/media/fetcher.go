package media

import (
	"context"
	"log/slog"
	"strconv"

	"jamesfarrell.me/ytscribe/internal/domain"
)

// Fetcher downloads the best available audio track of a video with yt-dlp.
type Fetcher struct {
	binary      string
	concurrency int
	runner      CommandRunner
	logger      *slog.Logger
}

func NewFetcher(binary string, concurrency int, runner CommandRunner, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		binary:      binary,
		concurrency: concurrency,
		runner:      runner,
		logger:      logger,
	}
}

// Fetch writes the audio of sourceURL to destPath. The URL is passed to the
// downloader untouched.
func (f *Fetcher) Fetch(ctx context.Context, sourceURL, destPath string) error {
	args := buildDownloadArgs(sourceURL, destPath, f.concurrency)

	f.logger.Debug("running downloader", "command", f.binary, "args", args)
	if err := runTool(ctx, f.runner, domain.ErrDownload, "downloading audio", f.binary, args); err != nil {
		return err
	}

	f.logger.Info("audio downloaded", "path", destPath)
	return nil
}

func buildDownloadArgs(sourceURL, destPath string, concurrency int) []string {
	return []string{
		"-f", "bestaudio",
		"-N", strconv.Itoa(concurrency),
		"-o", destPath,
		sourceURL,
	}
}

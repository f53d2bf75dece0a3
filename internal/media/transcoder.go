package media

import (
	"context"
	"log/slog"

	"jamesfarrell.me/ytscribe/internal/domain"
)

// Transcoder re-encodes downloaded audio into 16 kHz mono Opus at 24 kbit/s.
type Transcoder struct {
	binary string
	runner CommandRunner
	logger *slog.Logger
}

func NewTranscoder(binary string, runner CommandRunner, logger *slog.Logger) *Transcoder {
	return &Transcoder{
		binary: binary,
		runner: runner,
		logger: logger,
	}
}

// Transcode reads inputPath and writes outputPath. The input file is left in place.
func (t *Transcoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	args := buildFFmpegArgs(inputPath, outputPath)

	t.logger.Debug("running converter", "command", t.binary, "args", args)
	if err := runTool(ctx, t.runner, domain.ErrConversion, "converting audio", t.binary, args); err != nil {
		return err
	}

	t.logger.Info("audio converted", "path", outputPath)
	return nil
}

// buildFFmpegArgs maps the first input's audio only and drops any video or
// cover art stream. -y avoids a blocking overwrite prompt on stale output.
func buildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:a", "libopus",
		"-b:a", "24k",
		"-ar", "16000",
		"-ac", "1",
		"-map", "0:a:",
		"-vn",
		outputPath,
	}
}

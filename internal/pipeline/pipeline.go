package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jamesfarrell.me/ytscribe/internal/domain"
	"jamesfarrell.me/ytscribe/internal/media"
	"jamesfarrell.me/ytscribe/internal/output"
)

// Fixed names of the intermediate files, created inside the work directory.
const (
	AudioFileName     = "temp_audio.webm"
	ConvertedFileName = "converted_audio.webm"
)

type Fetcher interface {
	Fetch(ctx context.Context, sourceURL, destPath string) error
}

type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Driver runs fetch, transcode, transcribe and deliver strictly in order and
// stops at the first failure. Intermediate files are removed only after every
// stage has succeeded.
type Driver struct {
	fetcher       Fetcher
	transcoder    Transcoder
	transcriber   Transcriber
	sink          output.Sink
	audioPath     string
	convertedPath string
	remove        func(name string) error
	logger        *slog.Logger
	stage         domain.Stage
}

func NewDriver(
	fetcher Fetcher,
	transcoder Transcoder,
	transcriber Transcriber,
	sink output.Sink,
	workDir string,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		fetcher:       fetcher,
		transcoder:    transcoder,
		transcriber:   transcriber,
		sink:          sink,
		audioPath:     filepath.Join(workDir, AudioFileName),
		convertedPath: filepath.Join(workDir, ConvertedFileName),
		remove:        os.Remove,
		logger:        logger,
	}
}

// Stage reports the last stage entered by Run.
func (d *Driver) Stage() domain.Stage {
	return d.stage
}

func (d *Driver) Run(ctx context.Context, sourceURL string) error {
	log := d.logger.With("url", sourceURL)
	if id := media.VideoID(sourceURL); id != "" {
		log = log.With("video_id", id)
	}

	d.enter(log, domain.StageFetching)
	if err := d.fetcher.Fetch(ctx, sourceURL, d.audioPath); err != nil {
		return d.fail(err)
	}

	d.enter(log, domain.StageConverting)
	if err := d.transcoder.Transcode(ctx, d.audioPath, d.convertedPath); err != nil {
		return d.fail(err)
	}

	d.enter(log, domain.StageTranscribing)
	transcript, err := d.transcriber.Transcribe(ctx, d.convertedPath)
	if err != nil {
		return d.fail(err)
	}
	log.Info("transcript received", "chars", len(transcript))

	d.enter(log, domain.StageDelivering)
	if err := d.sink.Deliver(ctx, transcript); err != nil {
		return d.fail(err)
	}

	d.enter(log, domain.StageCleaning)
	if err := d.cleanup(); err != nil {
		return d.fail(err)
	}

	d.enter(log, domain.StageDone)
	return nil
}

func (d *Driver) enter(log *slog.Logger, stage domain.Stage) {
	d.stage = stage
	log.Info("stage started", "stage", stage)
}

func (d *Driver) fail(err error) error {
	failed := d.stage
	d.stage = domain.StageFailed
	return fmt.Errorf("%s: %w", failed, err)
}

// cleanup attempts both removals and reports every failure.
func (d *Driver) cleanup() error {
	var errs []error
	for _, path := range []string{d.audioPath, d.convertedPath} {
		if err := d.remove(path); err != nil {
			errs = append(errs, domain.Wrap(domain.ErrIO, "removing "+path, err))
		}
	}
	return errors.Join(errs...)
}

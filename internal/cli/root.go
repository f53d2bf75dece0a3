package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"jamesfarrell.me/ytscribe/internal/config"
	"jamesfarrell.me/ytscribe/internal/domain"
	"jamesfarrell.me/ytscribe/internal/media"
	"jamesfarrell.me/ytscribe/internal/output"
	"jamesfarrell.me/ytscribe/internal/pipeline"
	"jamesfarrell.me/ytscribe/internal/transcription"
)

var version = "dev"

// Options carries the process-level dependencies of the command. Tests replace
// them with fakes.
type Options struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Runner      media.CommandRunner
	Clipboard   output.Clipboard
	HTTPClient  *http.Client
	Credentials config.CredentialProvider
	LoadConfig  func() (*config.Config, error)
}

func DefaultOptions() Options {
	return Options{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Runner:     media.ExecRunner{},
		Clipboard:  output.SystemClipboard{},
		LoadConfig: config.Load,
	}
}

func NewRootCommand(opts Options) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "ytscribe <url>",
		Short: "Transcribe the audio of a video URL",
		Long: `ytscribe downloads the best audio track of a video with yt-dlp, re-encodes it
to 16 kHz mono Opus with ffmpeg and sends it to a Whisper transcription API.
The API key is read from GROQ_API_KEY (a .env file in the working directory is
loaded first).`,
		Example: `  # Print the transcript and copy it to the clipboard
  ytscribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Save the transcript to a file
  ytscribe "https://www.youtube.com/watch?v=dQw4w9WgXcQ" -o transcript.txt`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output text file name (default: stdout and clipboard)")

	return cmd
}

// Execute runs the command against os.Args and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand(DefaultOptions())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, opts Options, sourceURL, outputPath string) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return domain.Wrap(domain.ErrConfig, "loading configuration", err)
	}

	logger := config.NewLogger(cfg.Log, opts.Stderr)

	creds := opts.Credentials
	if creds == nil {
		creds = config.EnvCredentials{Var: cfg.Transcription.APIKeyEnv}
	}

	serviceOpts := []transcription.Option{
		transcription.WithEndpoint(cfg.Transcription.Endpoint),
		transcription.WithModel(cfg.Transcription.Model),
		transcription.WithLogger(logger),
	}
	if opts.HTTPClient != nil {
		serviceOpts = append(serviceOpts, transcription.WithHTTPClient(opts.HTTPClient))
	}

	driver := pipeline.NewDriver(
		media.NewFetcher(cfg.Downloader.Binary, cfg.Downloader.Concurrency, opts.Runner, logger),
		media.NewTranscoder(cfg.Converter.Binary, opts.Runner, logger),
		transcription.NewService(creds, serviceOpts...),
		output.New(outputPath, opts.Stdout, opts.Clipboard),
		cfg.WorkDir,
		logger,
	)

	return driver.Run(ctx, sourceURL)
}

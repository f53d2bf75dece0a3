package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"jamesfarrell.me/ytscribe/internal/domain"
)

// Sink delivers a finished transcript to its destination.
type Sink interface {
	Deliver(ctx context.Context, transcript string) error
}

// New returns a FileSink when path is set, otherwise a ConsoleSink.
func New(path string, stdout io.Writer, clip Clipboard) Sink {
	if path != "" {
		return NewFileSink(path, stdout)
	}
	return NewConsoleSink(stdout, clip)
}

// FileSink writes the transcript to a file, replacing any previous content.
type FileSink struct {
	path   string
	stdout io.Writer
}

func NewFileSink(path string, stdout io.Writer) *FileSink {
	return &FileSink{path: path, stdout: stdout}
}

func (s *FileSink) Deliver(_ context.Context, transcript string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return domain.Wrap(domain.ErrIO, "creating output file", err)
	}

	if _, err := io.WriteString(f, transcript); err != nil {
		f.Close()
		return domain.Wrap(domain.ErrIO, "writing transcript to file", err)
	}

	if err := f.Close(); err != nil {
		return domain.Wrap(domain.ErrIO, "closing output file", err)
	}

	fmt.Fprintf(s.stdout, "Transcription completed. Output saved to %s\n", s.path)
	return nil
}

// ConsoleSink prints the transcript and copies it to the clipboard. A clipboard
// failure fails the delivery.
type ConsoleSink struct {
	stdout    io.Writer
	clipboard Clipboard
}

func NewConsoleSink(stdout io.Writer, clip Clipboard) *ConsoleSink {
	return &ConsoleSink{stdout: stdout, clipboard: clip}
}

func (s *ConsoleSink) Deliver(_ context.Context, transcript string) error {
	fmt.Fprintln(s.stdout, "Transcription:")
	fmt.Fprintln(s.stdout, transcript)

	if err := s.clipboard.WriteAll(transcript); err != nil {
		return domain.Wrap(domain.ErrClipboard, "copying transcript to clipboard", err)
	}

	fmt.Fprintln(s.stdout, "\nThe transcription has been copied to your clipboard.")
	return nil
}

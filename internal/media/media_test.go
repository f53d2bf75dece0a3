package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"jamesfarrell.me/ytscribe/internal/domain"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations and returns a scripted outcome.
type fakeRunner struct {
	calls  []call
	result CommandResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (CommandResult, error) {
	f.calls = append(f.calls, call{name: name, args: append([]string{}, args...)})
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcherFetchSuccess(t *testing.T) {
	runner := &fakeRunner{}
	fetcher := NewFetcher("yt-dlp", 8, runner, discardLogger())

	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if err := fetcher.Fetch(context.Background(), url, "temp_audio.webm"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("runner calls = %d, want 1", len(runner.calls))
	}
	want := call{
		name: "yt-dlp",
		args: []string{"-f", "bestaudio", "-N", "8", "-o", "temp_audio.webm", url},
	}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Fatalf("call = %+v, want %+v", runner.calls[0], want)
	}
}

func TestFetcherFetchFailureCarriesStderr(t *testing.T) {
	tests := []struct {
		name     string
		result   CommandResult
		err      error
		wantCode int
	}{
		{
			name:     "non-zero exit",
			result:   CommandResult{ExitCode: 1, Stderr: "ERROR: [youtube] abc: Video unavailable"},
			err:      errors.New("exit status 1"),
			wantCode: 1,
		},
		{
			name:     "exit code without error",
			result:   CommandResult{ExitCode: 2, Stderr: "usage"},
			wantCode: 2,
		},
		{
			name:     "binary missing",
			result:   CommandResult{ExitCode: -1},
			err:      exec.ErrNotFound,
			wantCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: tt.result, err: tt.err}
			fetcher := NewFetcher("yt-dlp", 8, runner, discardLogger())

			err := fetcher.Fetch(context.Background(), "https://example.com/v", "out.webm")
			if !errors.Is(err, domain.ErrDownload) {
				t.Fatalf("Fetch() error = %v, want ErrDownload", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("Fetch() error = %v, want wrapped %v", err, tt.err)
			}

			var derr *domain.Error
			if !errors.As(err, &derr) {
				t.Fatalf("Fetch() error is not *domain.Error: %T", err)
			}
			if derr.Stderr != tt.result.Stderr {
				t.Errorf("Stderr = %q, want %q", derr.Stderr, tt.result.Stderr)
			}
			if derr.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", derr.ExitCode, tt.wantCode)
			}
			if derr.Command != "yt-dlp" {
				t.Errorf("Command = %q", derr.Command)
			}
		})
	}
}

func TestTranscoderTranscodeArgs(t *testing.T) {
	runner := &fakeRunner{}
	transcoder := NewTranscoder("ffmpeg", runner, discardLogger())

	if err := transcoder.Transcode(context.Background(), "in.webm", "out.webm"); err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("runner calls = %d, want 1", len(runner.calls))
	}
	got := runner.calls[0]
	if got.name != "ffmpeg" {
		t.Fatalf("command = %q, want ffmpeg", got.name)
	}
	joined := strings.Join(got.args, " ")
	for _, want := range []string{"-i in.webm", "-c:a libopus", "-b:a 24k", "-ar 16000", "-ac 1", "-map 0:a:", "-vn"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if got.args[len(got.args)-1] != "out.webm" {
		t.Errorf("last arg = %q, want output path", got.args[len(got.args)-1])
	}
}

func TestTranscoderTranscodeFailure(t *testing.T) {
	runner := &fakeRunner{
		result: CommandResult{ExitCode: 1, Stderr: "in.webm: Invalid data found when processing input"},
		err:    errors.New("exit status 1"),
	}
	transcoder := NewTranscoder("ffmpeg", runner, discardLogger())

	err := transcoder.Transcode(context.Background(), "in.webm", "out.webm")
	if !errors.Is(err, domain.ErrConversion) {
		t.Fatalf("Transcode() error = %v, want ErrConversion", err)
	}
	if errors.Is(err, domain.ErrDownload) {
		t.Fatalf("conversion failure must not match ErrDownload")
	}
	if !strings.Contains(err.Error(), "Invalid data found when processing input") {
		t.Fatalf("error %q does not carry stderr", err)
	}
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var runner ExecRunner

	result, err := runner.Run(context.Background(), "sh", "-c", "echo ignored; echo broken >&2; exit 3")
	if err == nil {
		t.Fatalf("Run() error = nil, want exit error")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if result.Stderr != "broken\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "broken\n")
	}

	result, err = runner.Run(context.Background(), "sh", "-c", "exit 0")
	if err != nil || result.ExitCode != 0 {
		t.Fatalf("Run() = %+v, %v; want success", result, err)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	var runner ExecRunner

	result, err := runner.Run(context.Background(), "ytscribe-definitely-not-installed")
	if err == nil {
		t.Fatalf("Run() error = nil, want start failure")
	}
	if result.ExitCode != -1 {
		t.Fatalf("ExitCode = %d, want -1", result.ExitCode)
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/shorts/abc123", want: "abc123"},
		{url: "https://vimeo.com/12345", want: ""},
		{url: "://bad", want: ""},
	}

	for _, tt := range tests {
		if got := VideoID(tt.url); got != tt.want {
			t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

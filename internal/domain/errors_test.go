package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &Error{
		Kind:     ErrDownload,
		Op:       "downloading audio",
		Command:  "yt-dlp",
		ExitCode: 1,
		Stderr:   "ERROR: video unavailable",
		Err:      cause,
	}

	if !errors.Is(err, ErrDownload) {
		t.Fatalf("errors.Is(err, ErrDownload) = false")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false")
	}
	if errors.Is(err, ErrConversion) {
		t.Fatalf("download error must not match ErrConversion")
	}

	msg := err.Error()
	for _, want := range []string{"downloading audio", "cmd=yt-dlp exit=1", "exit status 1", "ERROR: video unavailable"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestErrorfWithoutCause(t *testing.T) {
	err := Errorf(ErrConfig, "%s is not set", "GROQ_API_KEY")

	if !errors.Is(err, ErrConfig) {
		t.Fatalf("errors.Is(err, ErrConfig) = false")
	}
	if got, want := err.Error(), "GROQ_API_KEY is not set: configuration error"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestWrapSurvivesFurtherWrapping(t *testing.T) {
	inner := Wrap(ErrIO, "reading audio file", errors.New("permission denied"))
	outer := errors.Join(errors.New("transcribing"), inner)

	var target *Error
	if !errors.As(outer, &target) {
		t.Fatalf("errors.As did not find *Error")
	}
	if target.Op != "reading audio file" {
		t.Fatalf("Op = %q", target.Op)
	}
	if !errors.Is(outer, ErrIO) {
		t.Fatalf("errors.Is(outer, ErrIO) = false")
	}
}

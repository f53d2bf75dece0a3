package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure surfaced by a stage matches exactly one of these
// with errors.Is.
var (
	ErrDownload   = errors.New("download failed")
	ErrConversion = errors.New("conversion failed")
	ErrConfig     = errors.New("configuration error")
	ErrIO         = errors.New("i/o error")
	ErrRequest    = errors.New("request failed")
	ErrDecode     = errors.New("malformed response")
	ErrSchema     = errors.New("unexpected response shape")
	ErrClipboard  = errors.New("clipboard error")
)

// Error describes one failed operation. Command, ExitCode and Stderr are only
// set for external process failures.
type Error struct {
	Kind     error
	Op       string
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Command != "" {
		fmt.Fprintf(&b, " (cmd=%s exit=%d)", e.Command, e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if e.Kind != nil {
		b.WriteString(": ")
		b.WriteString(e.Kind.Error())
	}
	if e.Stderr != "" {
		b.WriteString("\nstderr: ")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Errorf builds an *Error of the given kind without an underlying cause.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around err.
func Wrap(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"jamesfarrell.me/ytscribe/internal/domain"
)

// CommandResult is what the pipeline needs from a finished external process.
type CommandResult struct {
	ExitCode int
	Stderr   string
}

// CommandRunner abstracts process execution so stages can be tested without
// the real binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct{}

// Run executes one command, discarding stdout and capturing stderr. A non-nil
// error is returned for a non-zero exit or when the process cannot start, in
// which case ExitCode is -1.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{Stderr: stderr.String()}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// runTool runs name and turns any failure into a domain error of the given kind.
func runTool(ctx context.Context, runner CommandRunner, kind error, op, name string, args []string) error {
	result, err := runner.Run(ctx, name, args...)
	if err == nil && result.ExitCode == 0 {
		return nil
	}

	return &domain.Error{
		Kind:     kind,
		Op:       op,
		Command:  name,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Err:      err,
	}
}

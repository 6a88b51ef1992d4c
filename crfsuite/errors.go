package crfsuite

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of a training run.
var (
	// ErrMalformedDump is returned when a STATE_FEATURES line cannot be parsed
	ErrMalformedDump = errors.New("malformed model dump")

	// ErrExternalProcess is returned when the trainer exits non-zero
	ErrExternalProcess = errors.New("external process failed")

	// ErrCleanup is returned when an intermediate file cannot be deleted
	ErrCleanup = errors.New("cleanup failed")
)

// MalformedDumpError represents a dump line missing its expected markers.
type MalformedDumpError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedDumpError) Error() string {
	return fmt.Sprintf("dump line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedDumpError) Is(target error) bool {
	return target == ErrMalformedDump
}

// ExternalProcessError carries the trainer's captured stderr verbatim.
type ExternalProcessError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("%s exited with status %d: %s", strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}

func (e *ExternalProcessError) Is(target error) bool {
	return target == ErrExternalProcess
}

// CleanupError reports an intermediate file that could not be removed.
type CleanupError struct {
	Path      string
	Remaining []string
	Err       error
}

func (e *CleanupError) Error() string {
	if len(e.Remaining) > 0 {
		return fmt.Sprintf("couldn't delete %s (left: %s): %v", e.Path, strings.Join(e.Remaining, ", "), e.Err)
	}
	return fmt.Sprintf("couldn't delete %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Is(target error) bool {
	return target == ErrCleanup
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

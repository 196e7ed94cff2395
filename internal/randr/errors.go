package randr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChange indicates a Change with no settings was validated or
// applied.
var ErrEmptyChange = errors.New("change contains no settings")

// ParseError reports a query output line that looked like an output
// header or mode line but did not match the expected layout.
type ParseError struct {
	LineNo  int    // 1-based line number within the query output
	Line    string // the offending line
	Display string // output being parsed when the line was hit, if known
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Display != "" {
		return fmt.Sprintf("parse error at line %d (output %s): %s: %q", e.LineNo, e.Display, e.Reason, e.Line)
	}
	return fmt.Sprintf("parse error at line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}

// ValidationError reports a requested setting the hardware or the
// current snapshot cannot satisfy. It is returned before any external
// process is spawned.
type ValidationError struct {
	Output string // output the change targets, if known
	Field  string // "resolution", "rotation", "position"
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("invalid %s %v for output %s: %s", e.Field, e.Value, e.Output, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a display name absent from the snapshot it was
// looked up in.
type NotFoundError struct {
	Output string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such output: %s", e.Output)
}

// ApplyError reports a failed external invocation: the binary was
// missing from the path, or it exited non-zero. Stderr is captured for
// the caller; this package never retries.
type ApplyError struct {
	Args     []string // full argument list passed to the binary
	ExitCode int      // -1 when the process did not run at all
	Stderr   string
	Err      error // underlying exec error
}

func (e *ApplyError) Error() string {
	msg := fmt.Sprintf("xrandr %s failed", strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg = fmt.Sprintf("%s: %s", msg, s)
	}
	if e.Err != nil && e.ExitCode < 0 {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ApplyError) Unwrap() error { return e.Err }

package randr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dadmoscow/xrandrctl/internal/logger"
)

// DefaultBinary is the xrandr executable looked up on PATH when no
// explicit path is configured.
const DefaultBinary = "xrandr"

// Client wraps the xrandr binary: Snapshot scrapes its query output
// into Display values, Apply serializes Changes back into its flag
// syntax and invokes it.
//
// Queries and applies block until the subprocess exits; concurrent
// applies from multiple callers are serialized by the X server, not
// here.
type Client struct {
	bin string
	run Runner
	log zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets the xrandr executable path.
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.bin = path
		}
	}
}

// WithRunner substitutes the subprocess runner.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.run = r }
}

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the system xrandr binary.
func New(opts ...Option) *Client {
	c := &Client{
		bin: DefaultBinary,
		run: execRunner{},
		log: *logger.WithComponent("randr"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot queries the current display configuration. Malformed output
// lines are logged at warn level and do not fail the query as long as
// at least one output parsed.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	stdout, stderr, err := c.run.Run(ctx, c.bin, "--query")
	if err != nil {
		return nil, c.applyError([]string{"--query"}, stderr, err)
	}

	displays, issues := parseQuery(string(stdout))
	for _, issue := range issues {
		c.log.Warn().
			Int("line", issue.LineNo).
			Str("display", issue.Display).
			Str("reason", issue.Reason).
			Msg("Skipped unparseable query output line")
	}

	if len(displays) == 0 && len(issues) > 0 {
		first := issues[0]
		return nil, fmt.Errorf("no outputs parsed from query output: %w", &first)
	}

	snap := &Snapshot{Displays: displays, Taken: time.Now()}
	c.log.Debug().
		Int("outputs", len(displays)).
		Int("parse_issues", len(issues)).
		Msg("Query complete")

	return snap, nil
}

// Apply validates every change against snap, then issues a single
// xrandr invocation carrying one --output clause per change, so a
// multi-display rearrangement (e.g. swapping two positions) is one
// atomic call to the underlying tool.
//
// Apply does not re-query: on success snap is stale and the caller
// should take a fresh Snapshot. On failure the system configuration is
// unchanged and no retry is attempted.
func (c *Client) Apply(ctx context.Context, snap *Snapshot, changes ...Change) error {
	if len(changes) == 0 {
		return ErrEmptyChange
	}

	var args []string
	for _, ch := range changes {
		if err := ch.Validate(snap); err != nil {
			return err
		}
		args = append(args, ch.Args()...)
	}

	c.log.Info().Strs("args", args).Msg("Applying display configuration")

	_, stderr, err := c.run.Run(ctx, c.bin, args...)
	if err != nil {
		return c.applyError(args, stderr, err)
	}
	// xrandr reports some failures on stderr with exit 0.
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return &ApplyError{Args: args, ExitCode: 0, Stderr: msg}
	}

	return nil
}

// Version returns the first line of `xrandr --version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.run.Run(ctx, c.bin, "--version")
	if err != nil {
		return "", c.applyError([]string{"--version"}, stderr, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(stdout)), "\n")
	return line, nil
}

func (c *Client) applyError(args []string, stderr []byte, err error) error {
	applyErr := &ApplyError{
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(string(stderr)),
		Err:      err,
	}

	// Matches *exec.ExitError without depending on it, so runners
	// other than os/exec can report exit codes too.
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		applyErr.ExitCode = exitErr.ExitCode()
	}

	c.log.Error().
		Int("exit_code", applyErr.ExitCode).
		Str("stderr", applyErr.Stderr).
		Strs("args", args).
		Msg("xrandr invocation failed")

	return applyErr
}

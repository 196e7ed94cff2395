package randr

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external command and returns its captured output.
// The production implementation shells out; tests substitute a fake so
// no subprocess is ever spawned.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner runs commands with os/exec, blocking until the process
// exits. Cancellation and timeouts come from the caller's context.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

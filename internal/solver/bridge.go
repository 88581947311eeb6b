// Package solver delegates generation to an external exact-optimization
// process. The process is untrusted: it runs under a wall-clock timeout,
// gets killed on cancellation, and every process-level failure is
// translated into a typed error instead of reaching the orchestrator.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

var (
	// ErrUnavailable: the process cannot be launched at all.
	ErrUnavailable = errors.New("solver unavailable")
	// ErrTimeout: the process exceeded its wall-clock budget and was killed.
	ErrTimeout = errors.New("solver timed out")
	// ErrBadOutput: the process ran but its result is unusable.
	ErrBadOutput = errors.New("solver produced unusable output")
)

type Bridge struct {
	path         string
	args         []string
	timeout      time.Duration
	probeTimeout time.Duration
}

func New(path string, args []string, timeout, probeTimeout time.Duration) *Bridge {
	return &Bridge{
		path:         path,
		args:         args,
		timeout:      timeout,
		probeTimeout: probeTimeout,
	}
}

func (b *Bridge) Name() string {
	return string(engine.AlgorithmExact)
}

// Probe is the cheap liveness check the orchestrator runs before choosing
// the exact algorithm in auto mode.
func (b *Bridge) Probe(ctx context.Context) error {
	if b.path == "" {
		return fmt.Errorf("no solver binary configured: %w", ErrUnavailable)
	}

	probeCtx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, b.path, "--probe")
	if err := cmd.Run(); err != nil {
		if probeCtx.Err() != nil {
			return fmt.Errorf("probe exceeded %s: %w", b.probeTimeout, ErrTimeout)
		}
		return fmt.Errorf("probe failed: %v: %w", err, ErrUnavailable)
	}
	return nil
}

// Generate serializes the problem onto the solver's stdin, waits for the
// structured result on stdout and translates it back into the domain
// model. It never panics across the package boundary.
func (b *Bridge) Generate(ctx context.Context, p *engine.Problem) (*engine.Outcome, error) {
	if b.path == "" {
		return nil, fmt.Errorf("no solver binary configured: %w", ErrUnavailable)
	}

	payload, err := json.Marshal(BuildRequest(p))
	if err != nil {
		return nil, fmt.Errorf("encode solver request: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, b.path, b.args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(started)

	if runErr != nil {
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("killed after %s: %w", b.timeout, ErrTimeout)
		case ctx.Err() != nil:
			// caller canceled the whole generation, not a solver fault
			return nil, ctx.Err()
		case isLaunchFailure(runErr):
			return nil, fmt.Errorf("cannot launch %s: %v: %w", b.path, runErr, ErrUnavailable)
		default:
			return nil, fmt.Errorf("exit error: %v, stderr: %s: %w", runErr, firstLine(stderr.Bytes()), ErrBadOutput)
		}
	}

	resp := &Response{}
	if err := json.Unmarshal(stdout.Bytes(), resp); err != nil {
		return nil, fmt.Errorf("decode solver response: %v: %w", err, ErrBadOutput)
	}

	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = resp.Status
		}
		return nil, fmt.Errorf("solver reported failure: %s: %w", reason, ErrBadOutput)
	}

	return translate(p, resp, elapsed), nil
}

// isLaunchFailure: anything that is not an exit status means the process
// never ran.
func isLaunchFailure(err error) bool {
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}

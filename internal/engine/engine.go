package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/compliance"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

// Engine selects and runs a generation algorithm for one (site, week)
// invocation. It holds no mutable state between calls and performs no
// writes; the caller persists the winning assignment set exactly once.
type Engine struct {
	exact          Generator // nil when no solver is configured
	heuristic      Generator
	compareTimeout time.Duration // 0 = unbounded
}

func New(exact, heuristic Generator, compareTimeout time.Duration) *Engine {
	return &Engine{
		exact:          exact,
		heuristic:      heuristic,
		compareTimeout: compareTimeout,
	}
}

// Options shape one generation call.
type Options struct {
	Algorithm Algorithm
	// AllowFallback lets an explicit "exact" request degrade to the
	// heuristic. Auto mode always falls back; pinned exact only does so
	// when this is set.
	AllowFallback bool
}

// Result is the engine's answer to the caller: a usable (possibly
// imperfect) schedule plus diagnostics, or nothing at all.
type Result struct {
	Success            bool                         `json:"success"`
	Algorithm          string                       `json:"algorithm"`
	RequestedAlgorithm Algorithm                    `json:"requestedAlgorithm"`
	Fallback           string                       `json:"fallback,omitempty"`
	Assignments        []*domain.ScheduleAssignment `json:"-"`
	Stats              Stats                        `json:"stats"`
	Violations         []compliance.Violation       `json:"violations"`
	Status             string                       `json:"status"`
	SolveTime          time.Duration                `json:"solveTime"`
}

// Generate runs the requested algorithm and attaches the advisory
// compliance report. Only input errors abort; solver failures degrade to
// the heuristic under the fallback rules.
func (e *Engine) Generate(ctx context.Context, p *Problem, opts Options) (*Result, error) {
	if err := e.validateInput(p); err != nil {
		return nil, err
	}

	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmAuto
	}

	var (
		outcome  *Outcome
		ranBy    string
		fallback string
	)

	switch algorithm {
	case AlgorithmHeuristic:
		out, err := e.heuristic.Generate(ctx, p)
		if err != nil {
			return nil, err
		}
		outcome, ranBy = out, e.heuristic.Name()

	case AlgorithmExact:
		out, name, reason, err := e.runExact(ctx, p, opts.AllowFallback)
		if err != nil {
			return nil, err
		}
		outcome, ranBy, fallback = out, name, reason

	case AlgorithmAuto:
		out, name, reason, err := e.runAuto(ctx, p)
		if err != nil {
			return nil, err
		}
		outcome, ranBy, fallback = out, name, reason

	case AlgorithmCompare:
		out, name, err := e.runCompare(ctx, p)
		if err != nil {
			return nil, err
		}
		outcome, ranBy = out, name

	default:
		return nil, inputErrorf("unknown algorithm %q", algorithm)
	}

	// advisory only: violations are surfaced for human review, the
	// schedule is still returned
	violations := compliance.Check(outcome.Assignments, p.Constraints)

	return &Result{
		Success:            true,
		Algorithm:          ranBy,
		RequestedAlgorithm: algorithm,
		Fallback:           fallback,
		Assignments:        outcome.Assignments,
		Stats:              outcome.Stats,
		Violations:         violations,
		Status:             outcome.Status,
		SolveTime:          outcome.SolveTime,
	}, nil
}

func (e *Engine) validateInput(p *Problem) error {
	if p.Site == nil {
		return inputErrorf("unknown work site")
	}

	activeEmployees := 0
	for _, emp := range p.Employees {
		if emp.IsActive {
			activeEmployees++
		}
	}
	if activeEmployees == 0 {
		return inputErrorf("site %d has no active employees", p.Site.ID)
	}

	activePositions := 0
	for _, pos := range p.Positions {
		if pos.IsActive {
			activePositions++
		}
	}
	if activePositions == 0 {
		return inputErrorf("site %d has no active positions", p.Site.ID)
	}

	return nil
}

// runExact runs the pinned exact algorithm. Without AllowFallback a solver
// failure surfaces to the caller instead of silently degrading.
func (e *Engine) runExact(ctx context.Context, p *Problem, allowFallback bool) (*Outcome, string, string, error) {
	if e.exact == nil {
		if !allowFallback {
			return nil, "", "", errors.New("exact solver requested but none is configured")
		}
		return e.fallBack(ctx, p, "no exact solver configured")
	}

	out, err := e.exact.Generate(ctx, p)
	if err == nil {
		return out, e.exact.Name(), "", nil
	}
	if ctx.Err() != nil {
		return nil, "", "", ctx.Err()
	}
	if !allowFallback {
		return nil, "", "", fmt.Errorf("exact solver failed: %w", err)
	}
	return e.fallBack(ctx, p, err.Error())
}

// runAuto probes the solver before committing to it and always falls back
// to the heuristic on solver failure.
func (e *Engine) runAuto(ctx context.Context, p *Problem) (*Outcome, string, string, error) {
	if e.exact == nil {
		out, err := e.heuristic.Generate(ctx, p)
		return out, e.heuristic.Name(), "", err
	}

	if prober, ok := e.exact.(Prober); ok {
		if err := prober.Probe(ctx); err != nil {
			return e.fallBack(ctx, p, fmt.Sprintf("solver probe failed: %v", err))
		}
	}

	out, err := e.exact.Generate(ctx, p)
	if err == nil {
		return out, e.exact.Name(), "", nil
	}
	if ctx.Err() != nil {
		return nil, "", "", ctx.Err()
	}
	return e.fallBack(ctx, p, err.Error())
}

func (e *Engine) fallBack(ctx context.Context, p *Problem, reason string) (*Outcome, string, string, error) {
	slog.Info("falling back to the heuristic generator", "reason", reason)
	out, err := e.heuristic.Generate(ctx, p)
	if err != nil {
		return nil, "", "", fmt.Errorf("heuristic fallback failed after %q: %w", reason, err)
	}
	return out, e.heuristic.Name(), reason, nil
}

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// runCompare runs both algorithms independently and picks a winner: more
// assignments first, lower solve time on a tie, the sole survivor when
// only one succeeded. Neither run sees the other's state and nothing is
// committed here.
func (e *Engine) runCompare(ctx context.Context, p *Problem) (*Outcome, string, error) {
	// results are merged once both runs complete or the comparison window
	// closes; a run that outlives the window surfaces a context error and
	// loses to the survivor
	if e.compareTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.compareTimeout)
		defer cancel()
	}

	if e.exact == nil {
		out, err := e.heuristic.Generate(ctx, p)
		if err != nil {
			return nil, "", err
		}
		return out, e.heuristic.Name(), nil
	}

	type attempt struct {
		name    string
		outcome *Outcome
		err     error
	}

	exact := attempt{name: e.exact.Name()}
	greedy := attempt{name: e.heuristic.Name()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		exact.outcome, exact.err = e.exact.Generate(ctx, p)
	}()
	go func() {
		defer wg.Done()
		greedy.outcome, greedy.err = e.heuristic.Generate(ctx, p)
	}()
	wg.Wait()

	switch {
	case exact.err != nil && greedy.err != nil:
		return nil, "", fmt.Errorf("all algorithms failed: %s: %v; %s: %v", exact.name, exact.err, greedy.name, greedy.err)
	case exact.err != nil:
		return greedy.outcome, greedy.name, nil
	case greedy.err != nil:
		return exact.outcome, exact.name, nil
	}

	winner, loser := exact, greedy
	if greedy.outcome.Stats.AssignmentsCount > exact.outcome.Stats.AssignmentsCount {
		winner, loser = greedy, exact
	} else if greedy.outcome.Stats.AssignmentsCount == exact.outcome.Stats.AssignmentsCount &&
		greedy.outcome.SolveTime < exact.outcome.SolveTime {
		winner, loser = greedy, exact
	}

	slog.Info("comparison mode finished",
		"winner", winner.name,
		"winnerAssignments", winner.outcome.Stats.AssignmentsCount,
		"winnerSolveTime", winner.outcome.SolveTime,
		"loser", loser.name,
		"loserAssignments", loser.outcome.Stats.AssignmentsCount,
		"loserSolveTime", loser.outcome.SolveTime,
	)

	return winner.outcome, winner.name, nil
}

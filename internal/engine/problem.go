// Package engine orchestrates schedule generation: it owns the problem and
// result contracts, dispatches to the configured algorithms, and applies
// the fallback and comparison rules. It performs no persistence.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

type Algorithm string

const (
	AlgorithmExact     Algorithm = "exact"
	AlgorithmHeuristic Algorithm = "heuristic"
	AlgorithmAuto      Algorithm = "auto"
	AlgorithmCompare   Algorithm = "compare"
)

// Problem is one (site, week) generation task. It is read-only by
// contract: generators must not mutate it, which is what lets comparison
// mode hand the same problem to both algorithms concurrently.
type Problem struct {
	Site             *domain.WorkSite
	WeekStart        time.Time
	Employees        []*domain.Employee
	Positions        []*domain.Position
	Shifts           []*domain.PositionShift
	Constraints      *constraint.Compiled
	FairnessWeight   float64 // 0..1
	OptimizationMode string  // fast | balanced | thorough
}

// Slot is one required staffing seat: a (date, position, shift) cell that
// wants Required employees.
type Slot struct {
	Day      int32
	Date     time.Time
	Position *domain.Position
	Shift    *domain.PositionShift
	Required int32
}

// Slots expands the problem into its staffing slots, ordered the way the
// heuristic consumes them: by day, then position sort order, then shift
// start time.
func (p *Problem) Slots() []Slot {
	positions := make([]*domain.Position, 0, len(p.Positions))
	for _, pos := range p.Positions {
		if pos.IsActive {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].SortOrder != positions[j].SortOrder {
			return positions[i].SortOrder < positions[j].SortOrder
		}
		return positions[i].ID < positions[j].ID
	})

	shiftsByPosition := make(map[int64][]*domain.PositionShift)
	for _, shift := range p.Shifts {
		if shift.IsActive {
			shiftsByPosition[shift.PositionID] = append(shiftsByPosition[shift.PositionID], shift)
		}
	}
	for _, shifts := range shiftsByPosition {
		sort.Slice(shifts, func(i, j int) bool {
			if shifts[i].StartTime != shifts[j].StartTime {
				return shifts[i].StartTime < shifts[j].StartTime
			}
			return shifts[i].ID < shifts[j].ID
		})
	}

	var slots []Slot
	for day := int32(0); day < 7; day++ {
		date := p.Constraints.Days[day]
		for _, pos := range positions {
			for _, shift := range shiftsByPosition[pos.ID] {
				required := constraint.ResolveRequiredStaff(p.Constraints.Requirements, pos, shift.ID, date)
				if required <= 0 {
					continue
				}
				slots = append(slots, Slot{
					Day:      day,
					Date:     date,
					Position: pos,
					Shift:    shift,
					Required: required,
				})
			}
		}
	}
	return slots
}

type Stats struct {
	AssignmentsCount  int `json:"assignmentsCount"`
	EmployeesAssigned int `json:"employeesAssigned"`
	CoverageGaps      int `json:"coverageGaps"`
	TotalSlots        int `json:"totalSlots"`
}

// Outcome is what a single algorithm run produces.
type Outcome struct {
	Assignments []*domain.ScheduleAssignment
	Stats       Stats
	Status      string
	SolveTime   time.Duration
}

// Generator is the uniform contract both algorithms implement; the
// orchestrator holds no algorithm-specific knowledge beyond it.
type Generator interface {
	Name() string
	Generate(ctx context.Context, p *Problem) (*Outcome, error)
}

// Prober is implemented by generators that can be cheaply checked for
// availability before committing to them.
type Prober interface {
	Probe(ctx context.Context) error
}

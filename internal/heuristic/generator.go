// Package heuristic implements the deterministic greedy generator: the
// default algorithm when no exact solver is installed and the fallback
// when the solver fails.
package heuristic

import (
	"context"
	"sort"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/compliance"
	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

const (
	defaultPositionBonus = 2.0
	preferWorkBonus      = 1.0
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Name() string {
	return string(engine.AlgorithmHeuristic)
}

// placement is one committed seat, projected onto the week timeline.
type placement struct {
	day      int32
	shift    *domain.PositionShift
	startMin int
	endMin   int
}

// employeeState accumulates what has already been given to one employee
// during the pass.
type employeeState struct {
	emp        *domain.Employee
	count      int // assignments made this week
	nights     int32
	hours      float64
	placements []placement
}

// Generate makes a single greedy pass over the week: days in order, slots
// ordered by (position sort order, shift start), each seat going to the
// best hard-eligible employee. No backtracking; an unfillable seat is
// recorded as a coverage gap, never an error.
func (g *Generator) Generate(ctx context.Context, p *engine.Problem) (*engine.Outcome, error) {
	started := time.Now()
	cc := p.Constraints

	states := make(map[int64]*employeeState, len(p.Employees))
	order := make([]int64, 0, len(p.Employees))
	for _, emp := range p.Employees {
		if !emp.IsActive {
			continue
		}
		states[emp.ID] = &employeeState{emp: emp}
		order = append(order, emp.ID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	slots := p.Slots()

	// guard against pathological inputs: the pass never evaluates more
	// candidates than this
	iterCap := (len(order) + 1) * (len(p.Shifts) + 1) * 7 * 8
	iterations := 0

	var assignments []*domain.ScheduleAssignment
	stats := engine.Stats{}

	for _, slot := range slots {
		stats.TotalSlots += int(slot.Required)
		slotStart, slotEnd := cc.Window(slot.Day, slot.Shift)

		for seat := int32(0); seat < slot.Required; seat++ {
			if iterations > iterCap || ctx.Err() != nil {
				stats.CoverageGaps++
				continue
			}

			best := g.pickBest(order, states, cc, slot, slotStart, slotEnd, p.FairnessWeight, &iterations)
			if best == nil {
				stats.CoverageGaps++
				continue
			}

			sa := &domain.ScheduleAssignment{
				EmployeeID: best.emp.ID,
				ShiftID:    slot.Shift.ID,
				PositionID: slot.Position.ID,
				WorkDate:   slot.Date,
				Status:     domain.AssignmentScheduled,
				Type:       domain.AssignmentRegular,
			}
			if cc.Composite(slot.Shift.ID) {
				// an expanded flexible shift is worked over its composite
				// window, recorded as the assignment's custom times
				start, end := cc.EffectiveShiftTimes(slot.Shift)
				sa.Type = domain.AssignmentFlexible
				sa.CustomStartTime = &start
				sa.CustomEndTime = &end
			}
			assignments = append(assignments, sa)
			stats.AssignmentsCount++

			pl := placement{day: slot.Day, shift: slot.Shift, startMin: slotStart, endMin: slotEnd}
			best.count++
			best.hours += float64(slotEnd-slotStart) / 60.0
			if slot.Shift.IsNightShift() {
				best.nights++
			}
			best.placements = append(best.placements, pl)
		}
	}

	for _, st := range states {
		if st.count > 0 {
			stats.EmployeesAssigned++
		}
	}

	return &engine.Outcome{
		Assignments: assignments,
		Stats:       stats,
		Status:      "completed",
		SolveTime:   time.Since(started),
	}, nil
}

// pickBest returns the highest-scoring hard-eligible employee for the
// seat, ties broken by ascending employee id for determinism.
func (g *Generator) pickBest(order []int64, states map[int64]*employeeState, cc *constraint.Compiled, slot engine.Slot, slotStart, slotEnd int, fairness float64, iterations *int) *employeeState {
	var best *employeeState
	bestScore := 0.0

	for _, empID := range order {
		*iterations++
		st := states[empID]
		if !g.eligible(st, cc, slot, slotStart, slotEnd) {
			continue
		}

		score := fairness * float64(-st.count)
		if st.emp.DefaultPositionID != nil && *st.emp.DefaultPositionID == slot.Position.ID {
			score += defaultPositionBonus
		}
		score += preferWorkBonus * cc.PreferScore(empID, slot.Day, slot.Shift.ID)

		// order is ascending by id, so a strict comparison keeps the
		// lowest id on ties
		if best == nil || score > bestScore {
			best = st
			bestScore = score
		}
	}
	return best
}

func (g *Generator) eligible(st *employeeState, cc *constraint.Compiled, slot engine.Slot, slotStart, slotEnd int) bool {
	if !cc.CanWork(st.emp.ID, slot.Day, slot.Shift.ID) {
		return false
	}

	// same-day limit: the max_shifts_per_day setting relaxes the one
	// assignment per day rule, overlaps stay forbidden
	sameDay := 0
	dayHours := 0.0
	for _, pl := range st.placements {
		if pl.day == slot.Day {
			sameDay++
			dayHours += float64(pl.endMin-pl.startMin) / 60.0
			if pl.startMin < slotEnd && slotStart < pl.endMin {
				return false
			}
		}
	}
	maxPerDay := cc.Settings.MaxShiftsPerDay
	if maxPerDay < 1 {
		maxPerDay = 1
	}
	if int32(sameDay) >= maxPerDay {
		return false
	}
	if cc.MaxDailyHours > 0 && dayHours+float64(slotEnd-slotStart)/60.0 > cc.MaxDailyHours {
		return false
	}

	// rest against every already-assigned shift: slots are position-major,
	// so the candidate may start before an assignment made earlier in the
	// pass and both directions need the gap check
	for _, pl := range st.placements {
		if pl.endMin <= slotStart {
			if !compliance.RestSatisfied(cc, pl.shift, pl.startMin, pl.endMin, slotStart) {
				return false
			}
		} else if slotEnd <= pl.startMin {
			if !compliance.RestSatisfied(cc, slot.Shift, slotStart, slotEnd, pl.startMin) {
				return false
			}
		}
	}

	// stay within the night cap and the consecutive-days limit instead of
	// generating a schedule the validator immediately flags
	if cc.MaxNightShifts > 0 && slot.Shift.IsNightShift() && st.nights >= cc.MaxNightShifts {
		return false
	}
	if cc.MaxConsecutiveDays > 0 && wouldExceedConsecutive(st, slot.Day, cc.MaxConsecutiveDays) {
		return false
	}
	if cc.WeeklyHoursCap > 0 && st.hours+float64(slotEnd-slotStart)/60.0 > cc.WeeklyHoursCap {
		return false
	}

	return true
}

func wouldExceedConsecutive(st *employeeState, day int32, limit int32) bool {
	workDays := make(map[int32]bool, len(st.placements)+1)
	for _, pl := range st.placements {
		workDays[pl.day] = true
	}
	workDays[day] = true

	run := int32(0)
	for d := int32(0); d < 7; d++ {
		if workDays[d] {
			run++
			if run > limit {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

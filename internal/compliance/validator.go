// Package compliance evaluates candidate assignment sets against the
// compiled constraint set. It is pure: the generators call it as a hard
// filter before committing a placement, and the orchestrator calls it once
// more after generation to attach an advisory violation report.
package compliance

import (
	"fmt"
	"sort"

	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

type ViolationType string

const (
	ViolationRest            ViolationType = "rest_violation"
	ViolationWeeklyHours     ViolationType = "weekly_hours_violation"
	ViolationConsecutiveDays ViolationType = "consecutive_days_violation"
	ViolationNightShiftCap   ViolationType = "night_shift_cap_violation"
	ViolationMissingDayOff   ViolationType = "missing_day_off"
)

type Violation struct {
	Type       ViolationType `json:"type"`
	EmployeeID int64         `json:"employeeID"`
	Measured   float64       `json:"measured"`
	Required   float64       `json:"required"`
	Message    string        `json:"message"`
}

// timed is one assignment projected onto the absolute week timeline.
type timed struct {
	sa       *domain.ScheduleAssignment
	shift    *domain.PositionShift
	day      int32
	startMin int
	endMin   int
}

// Check reports every violation in the assignment set. Violations are
// surfaced, never auto-corrected.
func Check(assignments []*domain.ScheduleAssignment, cc *constraint.Compiled) []Violation {
	perEmployee := make(map[int64][]timed)

	for _, sa := range assignments {
		day := cc.DayIndex(sa.WorkDate)
		if day < 0 {
			continue // outside the generated week
		}
		shift, ok := cc.Shift(sa.ShiftID)
		if !ok {
			continue
		}
		start, end := cc.AssignmentWindow(day, sa, shift)
		perEmployee[sa.EmployeeID] = append(perEmployee[sa.EmployeeID], timed{
			sa:       sa,
			shift:    shift,
			day:      day,
			startMin: start,
			endMin:   end,
		})
	}

	empIDs := make([]int64, 0, len(perEmployee))
	for id := range perEmployee {
		empIDs = append(empIDs, id)
	}
	sort.Slice(empIDs, func(i, j int) bool { return empIDs[i] < empIDs[j] })

	var violations []Violation
	for _, empID := range empIDs {
		violations = append(violations, checkEmployee(empID, perEmployee[empID], cc)...)
	}
	return violations
}

func checkEmployee(empID int64, ts []timed, cc *constraint.Compiled) []Violation {
	sort.Slice(ts, func(i, j int) bool { return ts[i].startMin < ts[j].startMin })

	var violations []Violation

	// rest between consecutive assignments, ordered by absolute start;
	// the worked duration comes from the effective window so a stretched
	// flexible assignment still earns the long-shift bonus
	for i := 1; i < len(ts); i++ {
		prev, next := ts[i-1], ts[i]
		required := cc.Rest.RequiredRestFor(prev.shift, float64(prev.endMin-prev.startMin)/60.0)
		gap := float64(next.startMin-prev.endMin) / 60.0
		if gap < required {
			violations = append(violations, Violation{
				Type:       ViolationRest,
				EmployeeID: empID,
				Measured:   gap,
				Required:   required,
				Message:    fmt.Sprintf("only %.1fh rest before %s on day %d, %.1fh required", gap, next.shift.Name, next.day, required),
			})
		}
	}

	// consecutive working days
	workDays := make(map[int32]bool)
	for _, t := range ts {
		workDays[t.day] = true
	}
	run := int32(0)
	maxRun := int32(0)
	for day := int32(0); day < 7; day++ {
		if workDays[day] {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	if cc.MaxConsecutiveDays > 0 && maxRun > cc.MaxConsecutiveDays {
		violations = append(violations, Violation{
			Type:       ViolationConsecutiveDays,
			EmployeeID: empID,
			Measured:   float64(maxRun),
			Required:   float64(cc.MaxConsecutiveDays),
			Message:    fmt.Sprintf("%d consecutive working days, at most %d allowed", maxRun, cc.MaxConsecutiveDays),
		})
	}

	// weekly hours cap
	if cc.WeeklyHoursCap > 0 {
		total := 0.0
		for _, t := range ts {
			total += float64(t.endMin-t.startMin) / 60.0
		}
		if total > cc.WeeklyHoursCap {
			violations = append(violations, Violation{
				Type:       ViolationWeeklyHours,
				EmployeeID: empID,
				Measured:   total,
				Required:   cc.WeeklyHoursCap,
				Message:    fmt.Sprintf("%.1f weekly hours exceed the %.1fh cap", total, cc.WeeklyHoursCap),
			})
		}
	}

	// night shift cap
	if cc.MaxNightShifts > 0 {
		nights := int32(0)
		for _, t := range ts {
			if t.shift.IsNightShift() {
				nights++
			}
		}
		if nights > cc.MaxNightShifts {
			violations = append(violations, Violation{
				Type:       ViolationNightShiftCap,
				EmployeeID: empID,
				Measured:   float64(nights),
				Required:   float64(cc.MaxNightShifts),
				Message:    fmt.Sprintf("%d night shifts exceed the cap of %d", nights, cc.MaxNightShifts),
			})
		}
	}

	// at least one fully free day in the week
	if cc.DayOffRequired && len(workDays) == 7 {
		violations = append(violations, Violation{
			Type:       ViolationMissingDayOff,
			EmployeeID: empID,
			Measured:   7,
			Required:   6,
			Message:    "no day without assignments in the week",
		})
	}

	return violations
}

// RestSatisfied is the filtering oracle the heuristic generator uses before
// committing a placement: does the gap between the end of prev and the
// start of the candidate satisfy the rest policy? Minute offsets are
// absolute offsets from week start; prev's window feeds the duration-based
// rest bonuses.
func RestSatisfied(cc *constraint.Compiled, prevShift *domain.PositionShift, prevStartMin, prevEndMin, nextStartMin int) bool {
	if prevShift == nil {
		return true
	}
	required := cc.Rest.RequiredRestFor(prevShift, float64(prevEndMin-prevStartMin)/60.0)
	return float64(nextStartMin-prevEndMin)/60.0 >= required
}

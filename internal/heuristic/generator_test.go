package heuristic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

// 2026-03-01 is a Sunday.
var weekStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

const (
	morningID = int64(10)
	dayID     = int64(11)
	nightID   = int64(12)
)

// threeShiftProblem is the canonical round-the-clock setup: one position
// staffed by one employee per shift, three shifts covering the day, a
// seven-employee roster.
func threeShiftProblem(t *testing.T, employees int, constraints []*domain.EmployeeConstraint) *engine.Problem {
	t.Helper()

	site := &domain.WorkSite{ID: 1, WeekStartDay: 0}
	positions := []*domain.Position{
		{ID: 1, SiteID: 1, Name: "Reception", NumOfEmp: 1, IsActive: true},
	}
	shifts := []*domain.PositionShift{
		{ID: morningID, PositionID: 1, Name: "Morning", StartTime: "06:00:00", EndTime: "14:00:00", IsActive: true},
		{ID: dayID, PositionID: 1, Name: "Day", StartTime: "14:00:00", EndTime: "22:00:00", IsActive: true},
		{ID: nightID, PositionID: 1, Name: "Night", StartTime: "22:00:00", EndTime: "06:00:00", IsActive: true},
	}

	roster := make([]*domain.Employee, 0, employees)
	for i := 1; i <= employees; i++ {
		roster = append(roster, &domain.Employee{ID: int64(i), SiteID: 1, IsActive: true})
	}

	cc, err := constraint.Compile(&constraint.Input{
		Site:        site,
		WeekStart:   weekStart,
		Positions:   positions,
		Shifts:      shifts,
		Employees:   roster,
		Constraints: constraints,
		Settings:    domain.DefaultScheduleSettings(1),
	})
	assert.NoError(t, err)

	return &engine.Problem{
		Site:             site,
		WeekStart:        weekStart,
		Employees:        roster,
		Positions:        positions,
		Shifts:           shifts,
		Constraints:      cc,
		FairnessWeight:   0.5,
		OptimizationMode: "balanced",
	}
}

func TestGenerate_FullCoverage(t *testing.T) {
	p := threeShiftProblem(t, 7, nil)

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)

	// 3 shifts x 7 days, all filled
	assert.Equal(t, 21, out.Stats.AssignmentsCount)
	assert.Equal(t, 21, out.Stats.TotalSlots)
	assert.Zero(t, out.Stats.CoverageGaps)
	assert.Equal(t, 7, out.Stats.EmployeesAssigned)
	assert.Equal(t, "completed", out.Status)
	assert.Len(t, out.Assignments, 21)
}

func TestGenerate_RespectsRestBetweenAssignments(t *testing.T) {
	p := threeShiftProblem(t, 7, nil)

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)

	// replay every employee's week and verify the rest gaps directly
	cc := p.Constraints
	perEmployee := make(map[int64][]*domain.ScheduleAssignment)
	for _, sa := range out.Assignments {
		perEmployee[sa.EmployeeID] = append(perEmployee[sa.EmployeeID], sa)
	}

	for empID, assignments := range perEmployee {
		type window struct{ start, end int }
		var windows []window
		for _, sa := range assignments {
			shift, ok := cc.Shift(sa.ShiftID)
			assert.True(t, ok)
			start, end := cc.Window(cc.DayIndex(sa.WorkDate), shift)
			windows = append(windows, window{start, end})
		}
		for i := range windows {
			for j := range windows {
				if i == j {
					continue
				}
				a, b := windows[i], windows[j]
				if a.end <= b.start {
					gap := float64(b.start-a.end) / 60.0
					assert.GreaterOrEqual(t, gap, 11.0, "employee %d has a rest gap of %.1fh", empID, gap)
				}
			}
		}
	}
}

func TestGenerate_HonorsCannotWork(t *testing.T) {
	monday := int32(1)
	p := threeShiftProblem(t, 7, []*domain.EmployeeConstraint{
		{ID: 1, EmployeeID: 1, Type: domain.ConstraintCannotWork, DayOfWeek: &monday, Status: domain.ConstraintActive},
	})

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)
	assert.Equal(t, 21, out.Stats.AssignmentsCount)

	mondayDate := weekStart.AddDate(0, 0, 1)
	for _, sa := range out.Assignments {
		if sa.EmployeeID == 1 {
			assert.False(t, sa.WorkDate.Equal(mondayDate), "employee 1 was scheduled on their blocked day")
		}
	}
}

func TestGenerate_PreferWorkBiasesSelection(t *testing.T) {
	sunday := int32(0)
	shiftID := morningID
	p := threeShiftProblem(t, 7, []*domain.EmployeeConstraint{
		{ID: 1, EmployeeID: 3, Type: domain.ConstraintPreferWork, DayOfWeek: &sunday, ShiftID: &shiftID, Status: domain.ConstraintActive},
	})

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)

	// without the preference the first Sunday morning seat goes to the
	// lowest id; the prefer_work bonus redirects it to employee 3
	first := out.Assignments[0]
	assert.Equal(t, morningID, first.ShiftID)
	assert.True(t, first.WorkDate.Equal(weekStart))
	assert.Equal(t, int64(3), first.EmployeeID)
}

func TestGenerate_DefaultPositionBonus(t *testing.T) {
	p := threeShiftProblem(t, 2, nil)
	posID := int64(1)
	p.Employees[1].DefaultPositionID = &posID

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Assignments)

	// the position-affinity bonus outweighs the fairness term on the
	// first seat
	assert.Equal(t, int64(2), out.Assignments[0].EmployeeID)
}

func TestGenerate_RecordsGapsInsteadOfFailing(t *testing.T) {
	p := threeShiftProblem(t, 1, nil)

	out, err := New().Generate(context.Background(), p)
	assert.NoError(t, err)

	// one employee cannot cover three shifts a day
	assert.Equal(t, 21, out.Stats.TotalSlots)
	assert.Greater(t, out.Stats.CoverageGaps, 0)
	assert.Equal(t, out.Stats.TotalSlots, out.Stats.AssignmentsCount+out.Stats.CoverageGaps)
}

func TestGenerate_MaxConsecutiveDaysLimitsSingleEmployee(t *testing.T) {
	// a single employee and a single daily shift: the six-day limit keeps
	// one day free even though the employee is otherwise available
	site := &domain.WorkSite{ID: 1, WeekStartDay: 0}
	positions := []*domain.Position{{ID: 1, SiteID: 1, Name: "Reception", NumOfEmp: 1, IsActive: true}}
	shifts := []*domain.PositionShift{
		{ID: dayID, PositionID: 1, Name: "Day", StartTime: "09:00:00", EndTime: "17:00:00", IsActive: true},
	}
	roster := []*domain.Employee{{ID: 1, SiteID: 1, IsActive: true}}

	cc, err := constraint.Compile(&constraint.Input{
		Site:      site,
		WeekStart: weekStart,
		Positions: positions,
		Shifts:    shifts,
		Employees: roster,
		Settings:  domain.DefaultScheduleSettings(1),
	})
	assert.NoError(t, err)

	out, err := New().Generate(context.Background(), &engine.Problem{
		Site:           site,
		WeekStart:      weekStart,
		Employees:      roster,
		Positions:      positions,
		Shifts:         shifts,
		Constraints:    cc,
		FairnessWeight: 0.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, out.Stats.AssignmentsCount)
	assert.Equal(t, 1, out.Stats.CoverageGaps)
}

func TestGenerate_Deterministic(t *testing.T) {
	p := threeShiftProblem(t, 7, nil)
	g := New()

	first, err := g.Generate(context.Background(), p)
	assert.NoError(t, err)
	second, err := g.Generate(context.Background(), p)
	assert.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, len(first.Assignments), len(second.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].EmployeeID, second.Assignments[i].EmployeeID)
		assert.Equal(t, first.Assignments[i].ShiftID, second.Assignments[i].ShiftID)
		assert.True(t, first.Assignments[i].WorkDate.Equal(second.Assignments[i].WorkDate))
	}
}

func TestGenerate_FlexibleShiftCarriesCompositeTimes(t *testing.T) {
	const doubleID = int64(20)

	site := &domain.WorkSite{ID: 1, WeekStartDay: 0}
	positions := []*domain.Position{
		{ID: 1, SiteID: 1, Name: "Reception", NumOfEmp: 1, IsActive: true},
	}
	shifts := []*domain.PositionShift{
		{ID: morningID, PositionID: 1, Name: "Early", StartTime: "06:00:00", EndTime: "10:00:00", IsActive: true},
		{ID: dayID, PositionID: 1, Name: "Late", StartTime: "10:00:00", EndTime: "14:00:00", IsActive: true},
		{
			ID: doubleID, PositionID: 1, Name: "Double", StartTime: "08:00:00", EndTime: "12:00:00",
			IsFlexible: true, SpansShiftID: []int64{morningID, dayID}, IsActive: true,
		},
	}

	roster := make([]*domain.Employee, 0, 5)
	for i := 1; i <= 5; i++ {
		roster = append(roster, &domain.Employee{ID: int64(i), SiteID: 1, IsActive: true})
	}

	cc, err := constraint.Compile(&constraint.Input{
		Site:      site,
		WeekStart: weekStart,
		Positions: positions,
		Shifts:    shifts,
		Employees: roster,
		Settings:  domain.DefaultScheduleSettings(1),
	})
	assert.NoError(t, err)

	out, err := New().Generate(context.Background(), &engine.Problem{
		Site:           site,
		WeekStart:      weekStart,
		Employees:      roster,
		Positions:      positions,
		Shifts:         shifts,
		Constraints:    cc,
		FairnessWeight: 0.5,
	})
	assert.NoError(t, err)

	// the flexible seat is worked over the union of the spanned windows,
	// not the 08:00-12:00 template
	found := 0
	for _, sa := range out.Assignments {
		if sa.ShiftID != doubleID {
			assert.Equal(t, domain.AssignmentRegular, sa.Type)
			continue
		}
		found++
		assert.Equal(t, domain.AssignmentFlexible, sa.Type)
		if assert.NotNil(t, sa.CustomStartTime) && assert.NotNil(t, sa.CustomEndTime) {
			assert.Equal(t, "06:00:00", *sa.CustomStartTime)
			assert.Equal(t, "14:00:00", *sa.CustomEndTime)
		}
	}
	assert.Greater(t, found, 0)
}

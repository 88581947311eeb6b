package solver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

// 2026-03-01 is a Sunday.
var weekStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func testProblem(t *testing.T) *engine.Problem {
	t.Helper()

	site := &domain.WorkSite{ID: 1, WeekStartDay: 0}
	positions := []*domain.Position{{ID: 1, SiteID: 1, Name: "Reception", NumOfEmp: 1, IsActive: true}}
	shifts := []*domain.PositionShift{
		{ID: 10, PositionID: 1, Name: "Day", StartTime: "09:00:00", EndTime: "17:00:00", IsActive: true},
	}
	employees := []*domain.Employee{
		{ID: 1, SiteID: 1, FullName: "Noa Cohen", IsActive: true},
		{ID: 2, SiteID: 1, FullName: "Itay Levi", IsActive: true},
	}

	cc, err := constraint.Compile(&constraint.Input{
		Site:      site,
		WeekStart: weekStart,
		Positions: positions,
		Shifts:    shifts,
		Employees: employees,
		Settings:  domain.DefaultScheduleSettings(1),
	})
	assert.NoError(t, err)

	return &engine.Problem{
		Site:             site,
		WeekStart:        weekStart,
		Employees:        employees,
		Positions:        positions,
		Shifts:           shifts,
		Constraints:      cc,
		FairnessWeight:   0.5,
		OptimizationMode: "balanced",
	}
}

// writeStub creates an executable shell script standing in for the solver
// binary.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	assert.NoError(t, err)
	return path
}

func TestGenerate_Success(t *testing.T) {
	stub := writeStub(t, `cat > /dev/null
echo '{"success":true,"status":"optimal","solve_time":0.25,"assignments":[{"emp_id":1,"shift_id":10,"pos_id":1,"date":"2026-03-01"},{"emp_id":2,"shift_id":10,"pos_id":1,"date":"2026-03-02"}],"assignments_count":2}'
`)

	bridge := New(stub, nil, 5*time.Second, time.Second)
	out, err := bridge.Generate(context.Background(), testProblem(t))
	assert.NoError(t, err)

	assert.Len(t, out.Assignments, 2)
	assert.Equal(t, int64(1), out.Assignments[0].EmployeeID)
	assert.True(t, out.Assignments[0].WorkDate.Equal(weekStart))
	assert.Equal(t, "optimal", out.Status)
	assert.Equal(t, 250*time.Millisecond, out.SolveTime)
	assert.Equal(t, 2, out.Stats.AssignmentsCount)
	assert.Equal(t, 7, out.Stats.TotalSlots)
	assert.Equal(t, 5, out.Stats.CoverageGaps)
}

func TestGenerate_DropsAssignmentsOutsideTheWeek(t *testing.T) {
	stub := writeStub(t, `cat > /dev/null
echo '{"success":true,"status":"optimal","assignments":[{"emp_id":1,"shift_id":10,"pos_id":1,"date":"2026-03-01"},{"emp_id":1,"shift_id":10,"pos_id":1,"date":"2026-04-01"},{"emp_id":1,"shift_id":99,"pos_id":1,"date":"2026-03-02"}]}'
`)

	bridge := New(stub, nil, 5*time.Second, time.Second)
	out, err := bridge.Generate(context.Background(), testProblem(t))
	assert.NoError(t, err)

	// the out-of-week date and the unknown shift are both discarded
	assert.Len(t, out.Assignments, 1)
}

func TestGenerate_Timeout(t *testing.T) {
	stub := writeStub(t, "sleep 5\n")

	bridge := New(stub, nil, 100*time.Millisecond, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerate_Unavailable(t *testing.T) {
	bridge := New(filepath.Join(t.TempDir(), "missing"), nil, time.Second, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerate_NoPathConfigured(t *testing.T) {
	bridge := New("", nil, time.Second, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerate_GarbageOutput(t *testing.T) {
	stub := writeStub(t, `cat > /dev/null
echo 'not json at all'
`)

	bridge := New(stub, nil, time.Second, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrBadOutput)
}

func TestGenerate_NonZeroExit(t *testing.T) {
	stub := writeStub(t, `cat > /dev/null
echo 'infeasible model' >&2
exit 3
`)

	bridge := New(stub, nil, time.Second, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrBadOutput)
	assert.Contains(t, err.Error(), "infeasible model")
}

func TestGenerate_ReportedFailure(t *testing.T) {
	stub := writeStub(t, `cat > /dev/null
echo '{"success":false,"status":"infeasible","error":"no feasible schedule"}'
`)

	bridge := New(stub, nil, time.Second, time.Second)
	_, err := bridge.Generate(context.Background(), testProblem(t))
	assert.ErrorIs(t, err, ErrBadOutput)
	assert.Contains(t, err.Error(), "no feasible schedule")
}

func TestGenerate_CallerCancellation(t *testing.T) {
	stub := writeStub(t, "sleep 5\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	bridge := New(stub, nil, time.Minute, time.Second)
	_, err := bridge.Generate(ctx, testProblem(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProbe(t *testing.T) {
	ok := writeStub(t, "exit 0\n")
	assert.NoError(t, New(ok, nil, time.Second, time.Second).Probe(context.Background()))

	failing := writeStub(t, "exit 1\n")
	assert.ErrorIs(t, New(failing, nil, time.Second, time.Second).Probe(context.Background()), ErrUnavailable)

	slow := writeStub(t, "sleep 5\n")
	assert.ErrorIs(t, New(slow, nil, time.Second, 50*time.Millisecond).Probe(context.Background()), ErrTimeout)

	assert.ErrorIs(t, New("", nil, time.Second, time.Second).Probe(context.Background()), ErrUnavailable)
}

func TestBuildRequest(t *testing.T) {
	p := testProblem(t)
	monday := int32(1)
	p.Constraints, _ = constraint.Compile(&constraint.Input{
		Site:      p.Site,
		WeekStart: weekStart,
		Positions: p.Positions,
		Shifts:    p.Shifts,
		Employees: p.Employees,
		Constraints: []*domain.EmployeeConstraint{
			{ID: 1, EmployeeID: 1, Type: domain.ConstraintCannotWork, DayOfWeek: &monday, Status: domain.ConstraintActive},
		},
		Settings: domain.DefaultScheduleSettings(1),
	})

	req := BuildRequest(p)

	assert.Len(t, req.Employees, 2)
	assert.Len(t, req.Shifts, 1)
	assert.Len(t, req.Days, 7)
	assert.Equal(t, "2026-03-01", req.Days[0].Date)
	assert.Equal(t, int32(0), req.Days[0].Weekday)

	// the whole-day directive expands to one entry per shift on that day
	assert.Len(t, req.Constraints.CannotWork, 1)
	assert.Equal(t, int64(1), req.Constraints.CannotWork[0].EmpID)
	assert.Equal(t, int32(1), req.Constraints.CannotWork[0].DayIndex)

	assert.Equal(t, "fixed", req.Settings.RestMethod)
	assert.Equal(t, 11.0, req.Settings.BaseMinRestHours)
	assert.Len(t, req.Settings.Requirements, 7)
}

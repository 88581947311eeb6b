package solver

import (
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

const dateLayout = "2006-01-02"

// Request is the self-contained problem document written to the solver
// process. Field names follow the subprocess contract, not this module's
// JSON conventions.
type Request struct {
	Employees   []RequestEmployee `json:"employees"`
	Shifts      []RequestShift    `json:"shifts"`
	Positions   []RequestPosition `json:"positions"`
	Days        []RequestDay      `json:"days"`
	Constraints RequestConstraint `json:"constraints"`
	Settings    RequestSettings   `json:"settings"`
}

type RequestEmployee struct {
	EmpID             int64  `json:"emp_id"`
	Name              string `json:"name"`
	DefaultPositionID int64  `json:"default_position_id"`
}

type RequestShift struct {
	ShiftID   int64   `json:"shift_id"`
	ShiftName string  `json:"shift_name"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Duration  float64 `json:"duration"`
	IsNight   bool    `json:"is_night"`
	PosID     int64   `json:"pos_id"`
}

type RequestPosition struct {
	PosID    int64  `json:"pos_id"`
	PosName  string `json:"pos_name"`
	NumOfEmp int32  `json:"num_of_emp"`
}

type RequestDay struct {
	Date     string `json:"date"`
	DayName  string `json:"day_name"`
	DayIndex int32  `json:"day_index"`
	Weekday  int32  `json:"weekday"`
}

type RequestConstraint struct {
	CannotWork []ConstraintEntry `json:"cannot_work"`
	PreferWork []ConstraintEntry `json:"prefer_work"`
}

// ConstraintEntry scopes one directive; ShiftID 0 covers the whole day.
type ConstraintEntry struct {
	EmpID    int64 `json:"emp_id"`
	DayIndex int32 `json:"day_index"`
	ShiftID  int64 `json:"shift_id"`
}

type RequestRequirement struct {
	ShiftID       int64 `json:"shift_id"`
	PosID         int64 `json:"pos_id"`
	DayIndex      int32 `json:"day_index"`
	RequiredStaff int32 `json:"required_staff"`
}

type RequestSettings struct {
	MaxShiftsPerDay       int32                `json:"max_shifts_per_day"`
	MaxConsecutiveDays    int32                `json:"max_consecutive_days"`
	BaseMinRestHours      float64              `json:"base_min_rest_hours"`
	RestMethod            string               `json:"rest_method"`
	DynamicRestMultiplier float64              `json:"dynamic_rest_multiplier"`
	NightShiftRestBonus   float64              `json:"night_shift_rest_bonus"`
	LongShiftThreshold    float64              `json:"long_shift_threshold"`
	LongShiftRestBonus    float64              `json:"long_shift_rest_bonus"`
	MaxNightShifts        int32                `json:"max_night_shifts"`
	WeeklyHoursCap        float64              `json:"weekly_hours_cap"`
	FairnessWeight        float64              `json:"fairness_weight"`
	OptimizationMode      string               `json:"optimization_mode"`
	Requirements          []RequestRequirement `json:"requirements"`
}

// Response is the single structured result read from the solver's stdout;
// failure payloads arrive on the same channel with success=false.
type Response struct {
	Success          bool                 `json:"success"`
	Status           string               `json:"status"`
	SolveTime        float64              `json:"solve_time"` // seconds
	Assignments      []ResponseAssignment `json:"assignments"`
	AssignmentsCount int                  `json:"assignments_count"`
	Error            string               `json:"error"`
}

type ResponseAssignment struct {
	EmpID   int64  `json:"emp_id"`
	ShiftID int64  `json:"shift_id"`
	PosID   int64  `json:"pos_id"`
	Date    string `json:"date"`
}

// BuildRequest translates the compiled problem into the solver's request
// shape. The bridge does no constraint logic of its own; the compiled set
// is converted verbatim.
func BuildRequest(p *engine.Problem) *Request {
	cc := p.Constraints
	req := &Request{
		Constraints: RequestConstraint{
			CannotWork: []ConstraintEntry{},
			PreferWork: []ConstraintEntry{},
		},
	}

	for _, emp := range p.Employees {
		if !emp.IsActive {
			continue
		}
		var defPos int64
		if emp.DefaultPositionID != nil {
			defPos = *emp.DefaultPositionID
		}
		req.Employees = append(req.Employees, RequestEmployee{
			EmpID:             emp.ID,
			Name:              emp.FullName,
			DefaultPositionID: defPos,
		})
	}

	for _, shift := range p.Shifts {
		if !shift.IsActive {
			continue
		}
		// a flexible shift is solved over its composite window
		start, end := cc.EffectiveShiftTimes(shift)
		req.Shifts = append(req.Shifts, RequestShift{
			ShiftID:   shift.ID,
			ShiftName: shift.Name,
			StartTime: start,
			EndTime:   end,
			Duration:  cc.EffectiveDurationHours(shift),
			IsNight:   shift.IsNightShift(),
			PosID:     shift.PositionID,
		})
	}

	for _, pos := range p.Positions {
		if !pos.IsActive {
			continue
		}
		req.Positions = append(req.Positions, RequestPosition{
			PosID:    pos.ID,
			PosName:  pos.Name,
			NumOfEmp: pos.NumOfEmp,
		})
	}

	for i, date := range cc.Days {
		req.Days = append(req.Days, RequestDay{
			Date:     date.Format(dateLayout),
			DayName:  date.Weekday().String(),
			DayIndex: int32(i),
			Weekday:  int32(date.Weekday()),
		})
	}

	for _, emp := range req.Employees {
		for day := int32(0); day < 7; day++ {
			for _, shift := range req.Shifts {
				if !cc.CanWork(emp.EmpID, day, shift.ShiftID) {
					req.Constraints.CannotWork = append(req.Constraints.CannotWork, ConstraintEntry{
						EmpID:    emp.EmpID,
						DayIndex: day,
						ShiftID:  shift.ShiftID,
					})
				}
				if cc.PreferScore(emp.EmpID, day, shift.ShiftID) > 0 {
					req.Constraints.PreferWork = append(req.Constraints.PreferWork, ConstraintEntry{
						EmpID:    emp.EmpID,
						DayIndex: day,
						ShiftID:  shift.ShiftID,
					})
				}
			}
		}
	}

	settings := RequestSettings{
		MaxShiftsPerDay:       cc.Settings.MaxShiftsPerDay,
		MaxConsecutiveDays:    cc.MaxConsecutiveDays,
		BaseMinRestHours:      cc.Rest.BaseHours,
		RestMethod:            string(cc.Rest.Method),
		DynamicRestMultiplier: cc.Rest.DynamicMultiplier,
		NightShiftRestBonus:   cc.Rest.NightBonus,
		LongShiftThreshold:    cc.Rest.LongShiftThreshold,
		LongShiftRestBonus:    cc.Rest.LongShiftBonus,
		MaxNightShifts:        cc.MaxNightShifts,
		WeeklyHoursCap:        cc.WeeklyHoursCap,
		FairnessWeight:        p.FairnessWeight,
		OptimizationMode:      p.OptimizationMode,
	}
	for _, slot := range p.Slots() {
		settings.Requirements = append(settings.Requirements, RequestRequirement{
			ShiftID:       slot.Shift.ID,
			PosID:         slot.Position.ID,
			DayIndex:      slot.Day,
			RequiredStaff: slot.Required,
		})
	}
	req.Settings = settings

	return req
}

// translate converts a solver response into the engine outcome shape.
func translate(p *engine.Problem, resp *Response, elapsed time.Duration) *engine.Outcome {
	cc := p.Constraints

	var assignments []*domain.ScheduleAssignment
	seen := make(map[int64]bool)

	for _, ra := range resp.Assignments {
		date, err := time.Parse(dateLayout, ra.Date)
		if err != nil {
			continue
		}
		if cc.DayIndex(date) < 0 {
			continue
		}
		shift, ok := cc.Shift(ra.ShiftID)
		if !ok {
			continue
		}
		sa := &domain.ScheduleAssignment{
			EmployeeID: ra.EmpID,
			ShiftID:    ra.ShiftID,
			PositionID: ra.PosID,
			WorkDate:   date,
			Status:     domain.AssignmentScheduled,
			Type:       domain.AssignmentRegular,
		}
		if cc.Composite(ra.ShiftID) {
			start, end := cc.EffectiveShiftTimes(shift)
			sa.Type = domain.AssignmentFlexible
			sa.CustomStartTime = &start
			sa.CustomEndTime = &end
		}
		assignments = append(assignments, sa)
		seen[ra.EmpID] = true
	}

	totalSlots := 0
	for _, slot := range p.Slots() {
		totalSlots += int(slot.Required)
	}
	gaps := totalSlots - len(assignments)
	if gaps < 0 {
		gaps = 0
	}

	solveTime := elapsed
	if resp.SolveTime > 0 {
		solveTime = time.Duration(resp.SolveTime * float64(time.Second))
	}

	return &engine.Outcome{
		Assignments: assignments,
		Stats: engine.Stats{
			AssignmentsCount:  len(assignments),
			EmployeesAssigned: len(seen),
			CoverageGaps:      gaps,
			TotalSlots:        totalSlots,
		},
		Status:    resp.Status,
		SolveTime: solveTime,
	}
}

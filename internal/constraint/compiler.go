package constraint

import (
	"fmt"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

// wholeDay marks a constraint that is not narrowed to a single shift.
const wholeDay int64 = 0

// baseWeeklyHours is the statutory work week the overtime cap builds on.
const baseWeeklyHours = 42.0

// Input carries everything the compiler needs for one (site, week).
type Input struct {
	Site         *domain.WorkSite
	WeekStart    time.Time
	Positions    []*domain.Position
	Shifts       []*domain.PositionShift
	Requirements []*domain.ShiftRequirement
	Employees    []*domain.Employee
	Constraints  []*domain.EmployeeConstraint
	LegalRules   []*domain.LegalConstraint
	Settings     *domain.ScheduleSettings
}

// Compiled is the normalized constraint set shared by the validator, the
// heuristic generator and the solver bridge. It is immutable after Compile.
type Compiled struct {
	WeekStart time.Time
	Days      [7]time.Time
	Settings  *domain.ScheduleSettings
	Rest      RestPolicy

	MaxConsecutiveDays int32
	MaxNightShifts     int32   // 0 = uncapped
	WeeklyHoursCap     float64 // 0 = uncapped
	MaxDailyHours      float64 // 0 = uncapped
	DayOffRequired     bool

	// Requirements kept after dropping rows that point at inactive shifts.
	Requirements []*domain.ShiftRequirement

	// Warnings collect the non-fatal compile issues (dropped requirements,
	// constraints against unknown shifts).
	Warnings []string

	shifts    map[int64]*domain.PositionShift
	composite map[int64]compositeWindow          // flexible shift -> expanded coverage
	cannot    map[int64]map[int32]map[int64]bool // employee -> day index -> shift (wholeDay = any)
	prefer    map[int64]map[int32]map[int64]bool
}

// compositeWindow is the coverage a flexible shift expands to: minute
// offsets within its day, end past 1440 when the window crosses midnight.
type compositeWindow struct {
	startMin int
	endMin   int
}

// NormalizeWeekStart rolls date back to the site's week start day and
// truncates it to midnight UTC. An out-of-range week start day is reduced
// modulo 7 so a bad row can never make the rollback loop spin forever.
func NormalizeWeekStart(site *domain.WorkSite, date time.Time) time.Time {
	target := ((site.WeekStartDay % 7) + 7) % 7
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for int32(d.Weekday()) != target {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func Compile(in *Input) (*Compiled, error) {
	if in.Settings == nil {
		return nil, fmt.Errorf("compile: no schedule settings for site %d", in.Site.ID)
	}

	c := &Compiled{
		WeekStart:          in.WeekStart,
		Settings:           in.Settings,
		Rest:               NewRestPolicy(in.Settings, in.LegalRules),
		MaxConsecutiveDays: in.Settings.MaxConsecutiveWorkDays,
		DayOffRequired:     true,
		shifts:             make(map[int64]*domain.PositionShift),
		composite:          make(map[int64]compositeWindow),
		cannot:             make(map[int64]map[int32]map[int64]bool),
		prefer:             make(map[int64]map[int32]map[int64]bool),
	}

	for i := range c.Days {
		c.Days[i] = in.WeekStart.AddDate(0, 0, i)
	}

	for _, shift := range in.Shifts {
		if shift.IsActive {
			c.shifts[shift.ID] = shift
		}
	}

	// expand flexible shifts into the union of the windows they span
	for _, shift := range in.Shifts {
		if !shift.IsActive || !shift.IsFlexible || len(shift.SpansShiftID) == 0 {
			continue
		}
		c.expandFlexible(shift)
	}

	// legal rules tighten whatever the settings allow
	for _, rule := range in.LegalRules {
		if !rule.IsActive {
			continue
		}
		switch rule.Type {
		case domain.LegalMaxConsecutiveDays:
			if v := int32(rule.Value); v < c.MaxConsecutiveDays {
				c.MaxConsecutiveDays = v
			}
		case domain.LegalMaxNightShifts:
			c.MaxNightShifts = int32(rule.Value)
		case domain.LegalMaxOvertimeWeekly:
			c.WeeklyHoursCap = baseWeeklyHours + rule.Value
		case domain.LegalMaxDailyHours:
			c.MaxDailyHours = rule.Value
		case domain.LegalMandatoryDayOff, domain.LegalWeeklyRest:
			c.DayOffRequired = true
		}
	}

	// drop requirements that reference inactive or unknown shifts
	for _, req := range in.Requirements {
		if _, ok := c.shifts[req.ShiftID]; !ok {
			c.Warnings = append(c.Warnings, fmt.Sprintf("requirement %d references inactive shift %d, dropped", req.ID, req.ShiftID))
			continue
		}
		c.Requirements = append(c.Requirements, req)
	}

	// expand employee constraints into per-day lookup maps
	for _, ec := range in.Constraints {
		if ec.ShiftID != nil {
			if _, ok := c.shifts[*ec.ShiftID]; !ok {
				c.Warnings = append(c.Warnings, fmt.Sprintf("constraint %d of employee %d references unknown shift %d, ignored", ec.ID, ec.EmployeeID, *ec.ShiftID))
				continue
			}
		}

		for day := int32(0); day < 7; day++ {
			if !ec.Applies(c.Days[day]) {
				continue
			}

			shiftKey := wholeDay
			if ec.ShiftID != nil {
				shiftKey = *ec.ShiftID
			}

			switch ec.Type {
			case domain.ConstraintCannotWork:
				c.mark(c.cannot, ec.EmployeeID, day, shiftKey)
			case domain.ConstraintPreferWork:
				c.mark(c.prefer, ec.EmployeeID, day, shiftKey)
			}
		}
	}

	return c, nil
}

func (c *Compiled) mark(m map[int64]map[int32]map[int64]bool, empID int64, day int32, shiftKey int64) {
	if _, ok := m[empID]; !ok {
		m[empID] = make(map[int32]map[int64]bool)
	}
	if _, ok := m[empID][day]; !ok {
		m[empID][day] = make(map[int64]bool)
	}
	m[empID][day][shiftKey] = true
}

// expandFlexible resolves a flexible shift's composite coverage window
// from the active shifts it spans. Spanned ids that resolve to unknown or
// inactive shifts are skipped with a warning; when none survive the shift
// keeps its template window.
func (c *Compiled) expandFlexible(shift *domain.PositionShift) {
	startMin, endMin := -1, -1
	for _, spannedID := range shift.SpansShiftID {
		spanned, ok := c.shifts[spannedID]
		if !ok {
			c.Warnings = append(c.Warnings, fmt.Sprintf("flexible shift %d spans unknown or inactive shift %d, skipped", shift.ID, spannedID))
			continue
		}

		s, err := minuteOfDay(spanned.StartTime)
		if err != nil {
			continue
		}
		e, err := minuteOfDay(spanned.EndTime)
		if err != nil {
			continue
		}
		if e <= s {
			e += 24 * 60 // crosses midnight
		}

		if startMin < 0 || s < startMin {
			startMin = s
		}
		if e > endMin {
			endMin = e
		}
	}

	if startMin < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("flexible shift %d spans no usable shifts, keeping its own times", shift.ID))
		return
	}
	c.composite[shift.ID] = compositeWindow{startMin: startMin, endMin: endMin}
}

func minuteOfDay(timeOfDay string) (int, error) {
	t, err := time.Parse(domain.TimeOfDayLayout, timeOfDay)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Shift looks up an active shift template by id.
func (c *Compiled) Shift(id int64) (*domain.PositionShift, bool) {
	s, ok := c.shifts[id]
	return s, ok
}

// CanWork is the hard-availability flag for (employee, day, shift).
func (c *Compiled) CanWork(empID int64, day int32, shiftID int64) bool {
	days, ok := c.cannot[empID]
	if !ok {
		return true
	}
	marks, ok := days[day]
	if !ok {
		return true
	}
	return !marks[wholeDay] && !marks[shiftID]
}

// PreferScore is the soft preference score for (employee, day, shift):
// 1 when an active prefer_work constraint matches, 0 otherwise.
func (c *Compiled) PreferScore(empID int64, day int32, shiftID int64) float64 {
	days, ok := c.prefer[empID]
	if !ok {
		return 0
	}
	marks, ok := days[day]
	if !ok {
		return 0
	}
	if marks[wholeDay] || marks[shiftID] {
		return 1
	}
	return 0
}

// Window returns the shift's start and end as absolute minute offsets from
// week start, so that a shift ending at 02:00 the next calendar day sorts
// correctly against the shifts that follow it.
func (c *Compiled) Window(day int32, shift *domain.PositionShift) (startMin, endMin int) {
	if w, ok := c.composite[shift.ID]; ok {
		base := int(day) * 24 * 60
		return base + w.startMin, base + w.endMin
	}

	t, err := time.Parse(domain.TimeOfDayLayout, shift.StartTime)
	if err != nil {
		return 0, 0
	}
	startMin = int(day)*24*60 + t.Hour()*60 + t.Minute()
	endMin = startMin + int(shift.DurationHours()*60)
	return startMin, endMin
}

// Composite reports whether the shift's coverage was expanded from the
// shifts it spans.
func (c *Compiled) Composite(shiftID int64) bool {
	_, ok := c.composite[shiftID]
	return ok
}

// EffectiveShiftTimes returns the times of day a shift actually covers:
// the composite window for an expanded flexible shift, the template times
// otherwise.
func (c *Compiled) EffectiveShiftTimes(shift *domain.PositionShift) (start, end string) {
	if w, ok := c.composite[shift.ID]; ok {
		return minuteString(w.startMin), minuteString(w.endMin % (24 * 60))
	}
	return shift.StartTime, shift.EndTime
}

// EffectiveDurationHours is DurationHours over the effective window.
func (c *Compiled) EffectiveDurationHours(shift *domain.PositionShift) float64 {
	if w, ok := c.composite[shift.ID]; ok {
		return float64(w.endMin-w.startMin) / 60.0
	}
	return shift.DurationHours()
}

func minuteString(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// AssignmentWindow is Window with a flexible assignment's custom times
// taken into account.
func (c *Compiled) AssignmentWindow(day int32, sa *domain.ScheduleAssignment, shift *domain.PositionShift) (startMin, endMin int) {
	start, end := sa.EffectiveTimes(shift)
	if start == shift.StartTime && end == shift.EndTime {
		// no custom times; Window also resolves composite coverage
		return c.Window(day, shift)
	}
	st, err := time.Parse(domain.TimeOfDayLayout, start)
	if err != nil {
		return c.Window(day, shift)
	}
	et, err := time.Parse(domain.TimeOfDayLayout, end)
	if err != nil {
		return c.Window(day, shift)
	}

	startMin = int(day)*24*60 + st.Hour()*60 + st.Minute()
	endOfDay := et.Hour()*60 + et.Minute()
	startOfDay := st.Hour()*60 + st.Minute()
	if endOfDay <= startOfDay {
		endOfDay += 24 * 60 // crosses midnight
	}
	endMin = int(day)*24*60 + endOfDay
	return startMin, endMin
}

// DayIndex maps a calendar date into the week, or -1 when outside it.
func (c *Compiled) DayIndex(date time.Time) int32 {
	for i, d := range c.Days {
		if sameDate(d, date) {
			return int32(i)
		}
	}
	return -1
}

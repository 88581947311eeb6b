package domain

import "time"

const TimeOfDayLayout = "15:04:05"

type ShiftKind string

const (
	ShiftKindMorning ShiftKind = "morning"
	ShiftKindDay     ShiftKind = "day"
	ShiftKindEvening ShiftKind = "evening"
	ShiftKindNight   ShiftKind = "night"
)

// PositionShift is a named shift template bound to a position. Start and
// end are times of day in "15:04:05" form; a shift whose end is not after
// its start crosses midnight.
type PositionShift struct {
	ID           int64     `json:"id"`
	PositionID   int64     `json:"positionID"`
	Name         string    `json:"name"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	IsFlexible   bool      `json:"isFlexible"`
	SpansShiftID []int64   `json:"spansShiftIDs"` // composite coverage window for flexible shifts
	SortOrder    int32     `json:"sortOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

func (ps *PositionShift) startMinute() int {
	t, err := time.Parse(TimeOfDayLayout, ps.StartTime)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func (ps *PositionShift) endMinute() int {
	t, err := time.Parse(TimeOfDayLayout, ps.EndTime)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// CrossesMidnight reports whether the shift ends on the next calendar day.
func (ps *PositionShift) CrossesMidnight() bool {
	return ps.endMinute() <= ps.startMinute()
}

// DurationHours is derived from the template times, normalizing shifts
// that cross midnight.
func (ps *PositionShift) DurationHours() float64 {
	start := ps.startMinute()
	end := ps.endMinute()
	if end <= start {
		end += 24 * 60
	}
	return float64(end-start) / 60.0
}

// IsNightShift is derived: starts at or after 22:00, or ends at or before
// 06:00.
func (ps *PositionShift) IsNightShift() bool {
	return ps.startMinute() >= 22*60 || ps.endMinute() <= 6*60
}

// Kind buckets the shift into one of the four archetypes by start time.
func (ps *PositionShift) Kind() ShiftKind {
	if ps.IsNightShift() {
		return ShiftKindNight
	}
	switch start := ps.startMinute(); {
	case start < 10*60:
		return ShiftKindMorning
	case start < 15*60:
		return ShiftKindDay
	default:
		return ShiftKindEvening
	}
}

package domain

import "time"

type ScheduleStatus string

const (
	ScheduleDraft     ScheduleStatus = "draft"
	SchedulePublished ScheduleStatus = "published"
)

// Schedule is the weekly header: one per (site, week), spanning exactly
// seven days starting on the site's week start day.
type Schedule struct {
	ID        int64          `json:"id"`
	SiteID    int64          `json:"siteID"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}

type AssignmentStatus string

const (
	AssignmentScheduled AssignmentStatus = "scheduled"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentAbsent    AssignmentStatus = "absent"
	AssignmentReplaced  AssignmentStatus = "replaced"
)

type AssignmentType string

const (
	AssignmentRegular  AssignmentType = "regular"
	AssignmentFlexible AssignmentType = "flexible"
)

type ScheduleAssignment struct {
	ID              int64            `json:"id"`
	ScheduleID      int64            `json:"scheduleID"`
	EmployeeID      int64            `json:"employeeID"`
	ShiftID         int64            `json:"shiftID"`
	PositionID      int64            `json:"positionID"`
	WorkDate        time.Time        `json:"workDate"`
	Status          AssignmentStatus `json:"status"`
	Type            AssignmentType   `json:"assignmentType"`
	CustomStartTime *string          `json:"customStartTime"` // flexible assignments only
	CustomEndTime   *string          `json:"customEndTime"`
	CoveringForID   *int64           `json:"coveringFor"`
	CreatedAt       time.Time        `json:"createdAt"`
	Version         int32            `json:"-"`
}

// EffectiveTimes returns the assignment's start and end times of day,
// preferring the custom override of a flexible assignment over the shift
// template.
func (sa *ScheduleAssignment) EffectiveTimes(shift *PositionShift) (string, string) {
	if sa.Type == AssignmentFlexible && sa.CustomStartTime != nil && sa.CustomEndTime != nil {
		return *sa.CustomStartTime, *sa.CustomEndTime
	}
	return shift.StartTime, shift.EndTime
}

package domain

import "time"

type RestMethod string

const (
	RestMethodFixed      RestMethod = "fixed"
	RestMethodDynamic    RestMethod = "dynamic"
	RestMethodShiftBased RestMethod = "shift_based"
)

// ScheduleSettings are the per-site generation tunables. They are threaded
// through the compiler and validator as an immutable parameter object.
type ScheduleSettings struct {
	SiteID                  int64      `json:"siteID"`
	MaxConsecutiveWorkDays  int32      `json:"maxConsecutiveWorkDays"`
	BaseMinRestHours        float64    `json:"baseMinRestHours"`
	RestMethod              RestMethod `json:"restMethod"`
	DynamicRestMultiplier   float64    `json:"dynamicRestMultiplier"`
	MaxShiftsPerDay         int32      `json:"maxShiftsPerDay"`
	NightShiftRestBonus     float64    `json:"nightShiftRestBonus"`
	LongShiftThresholdHours float64    `json:"longShiftThresholdHours"`
	LongShiftRestBonus      float64    `json:"longShiftRestBonus"`
	GenerationDay           int32      `json:"generationDay"`
	GenerationTime          string     `json:"generationTime"`
	DeadlineHoursBefore     int32      `json:"deadlineHoursBefore"` // constraint submission deadline
	CreatedAt               time.Time  `json:"createdAt"`
	Version                 int32      `json:"-"`
}

// DefaultScheduleSettings mirror the values a new site starts with.
func DefaultScheduleSettings(siteID int64) *ScheduleSettings {
	return &ScheduleSettings{
		SiteID:                  siteID,
		MaxConsecutiveWorkDays:  6,
		BaseMinRestHours:        11,
		RestMethod:              RestMethodFixed,
		DynamicRestMultiplier:   1.0,
		MaxShiftsPerDay:         1,
		NightShiftRestBonus:     3,
		LongShiftThresholdHours: 10,
		LongShiftRestBonus:      2,
		GenerationDay:           3,
		GenerationTime:          "10:00:00",
		DeadlineHoursBefore:     48,
	}
}

package domain

import "time"

// ShiftRequirement pins the required staff count for a position shift,
// either on a recurring day of week (nil DayOfWeek means every day) or on
// one specific calendar date. Specific-date rows override recurring rows.
type ShiftRequirement struct {
	ID            int64      `json:"id"`
	PositionID    int64      `json:"positionID"`
	ShiftID       int64      `json:"shiftID"`
	DayOfWeek     *int32     `json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday; nil = all days
	SpecificDate  *time.Time `json:"specificDate"`
	RequiredStaff int32      `json:"requiredStaff"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	Version       int32      `json:"-"`
}

// InWindow reports whether the requirement's validity window covers date.
func (sr *ShiftRequirement) InWindow(date time.Time) bool {
	if sr.ValidFrom != nil && date.Before(*sr.ValidFrom) {
		return false
	}
	if sr.ValidUntil != nil && date.After(*sr.ValidUntil) {
		return false
	}
	return true
}

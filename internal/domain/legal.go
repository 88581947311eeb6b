package domain

import "time"

type LegalRuleType string

const (
	LegalMaxDailyHours        LegalRuleType = "max_daily_hours"
	LegalMinRestBetweenShifts LegalRuleType = "min_rest_between_shifts"
	LegalWeeklyRest           LegalRuleType = "weekly_rest"
	LegalMandatoryDayOff      LegalRuleType = "mandatory_day_off"
	LegalMaxNightShifts       LegalRuleType = "max_night_shifts"
	LegalMaxOvertimeWeekly    LegalRuleType = "max_overtime_weekly"
	LegalMaxConsecutiveDays   LegalRuleType = "max_consecutive_days"
)

type LegalConstraint struct {
	ID        int64         `json:"id"`
	SiteID    int64         `json:"siteID"`
	Name      string        `json:"name"`
	Type      LegalRuleType `json:"type"`
	Value     float64       `json:"value"`
	IsActive  bool          `json:"isActive"`
	CreatedAt time.Time     `json:"createdAt"`
	Version   int32         `json:"-"`
}

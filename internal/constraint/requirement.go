package constraint

import (
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

// ResolveRequiredStaff returns the staff count required for shiftID on
// date. Precedence: a specific-date requirement beats a day-of-week
// recurrence, which beats an all-days recurrence; the position's headcount
// is the fallback when no requirement matches. Validity windows filter
// candidates before precedence applies, and within one tier the most
// recently created requirement wins.
func ResolveRequiredStaff(reqs []*domain.ShiftRequirement, pos *domain.Position, shiftID int64, date time.Time) int32 {
	var specific, weekday, allDays *domain.ShiftRequirement
	dow := int32(date.Weekday())

	for _, req := range reqs {
		if req.ShiftID != shiftID || !req.IsActive || !req.InWindow(date) {
			continue
		}

		switch {
		case req.SpecificDate != nil:
			if sameDate(*req.SpecificDate, date) && (specific == nil || req.ID > specific.ID) {
				specific = req
			}
		case req.DayOfWeek != nil:
			if *req.DayOfWeek == dow && (weekday == nil || req.ID > weekday.ID) {
				weekday = req
			}
		default:
			if allDays == nil || req.ID > allDays.ID {
				allDays = req
			}
		}
	}

	switch {
	case specific != nil:
		return specific.RequiredStaff
	case weekday != nil:
		return weekday.RequiredStaff
	case allDays != nil:
		return allDays.RequiredStaff
	default:
		return pos.NumOfEmp
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

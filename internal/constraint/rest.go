package constraint

import "github.com/JohWeak/shifts-app-sub005/internal/domain"

// shiftBasedRest is the per-archetype base rest table used when the site's
// rest method is shift_based. Values come from the collective agreements
// the product ships with; the night and long-shift bonuses still apply on
// top of the table value.
var shiftBasedRest = map[domain.ShiftKind]float64{
	domain.ShiftKindMorning: 8,
	domain.ShiftKindDay:     10,
	domain.ShiftKindEvening: 11,
	domain.ShiftKindNight:   12,
}

// RestPolicy computes the minimum rest an employee needs before starting a
// new shift, given the shift they just finished.
type RestPolicy struct {
	Method             domain.RestMethod
	BaseHours          float64
	DynamicMultiplier  float64
	NightBonus         float64
	LongShiftThreshold float64
	LongShiftBonus     float64
}

func NewRestPolicy(settings *domain.ScheduleSettings, legal []*domain.LegalConstraint) RestPolicy {
	base := settings.BaseMinRestHours

	// an active legal minimum floors the configured base
	for _, rule := range legal {
		if rule.IsActive && rule.Type == domain.LegalMinRestBetweenShifts && rule.Value > base {
			base = rule.Value
		}
	}

	return RestPolicy{
		Method:             settings.RestMethod,
		BaseHours:          base,
		DynamicMultiplier:  settings.DynamicRestMultiplier,
		NightBonus:         settings.NightShiftRestBonus,
		LongShiftThreshold: settings.LongShiftThresholdHours,
		LongShiftBonus:     settings.LongShiftRestBonus,
	}
}

// RequiredRest returns the minimum number of hours of rest required after
// prev before the next shift may start. A nil prev means the employee has
// not worked yet and needs no rest.
func (p RestPolicy) RequiredRest(prev *domain.PositionShift) float64 {
	if prev == nil {
		return 0
	}
	return p.RequiredRestFor(prev, prev.DurationHours())
}

// RequiredRestFor is RequiredRest with the worked duration supplied by the
// caller, for assignments whose effective window differs from the shift
// template (flexible assignments with custom or composite times).
func (p RestPolicy) RequiredRestFor(prev *domain.PositionShift, durationHours float64) float64 {
	if prev == nil {
		return 0
	}

	var rest float64
	switch p.Method {
	case domain.RestMethodFixed:
		// fixed rest ignores every modifier
		return p.BaseHours
	case domain.RestMethodDynamic:
		rest = p.BaseHours * p.DynamicMultiplier
	case domain.RestMethodShiftBased:
		var ok bool
		if rest, ok = shiftBasedRest[prev.Kind()]; !ok {
			rest = p.BaseHours
		}
	default:
		rest = p.BaseHours
	}

	if prev.IsNightShift() {
		rest += p.NightBonus
	}
	if p.LongShiftThreshold > 0 && durationHours >= p.LongShiftThreshold {
		rest += p.LongShiftBonus
	}

	return rest
}

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func shift(start, end string) *domain.PositionShift {
	return &domain.PositionShift{
		ID:        1,
		Name:      start + "-" + end,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func dynamicSettings() *domain.ScheduleSettings {
	s := domain.DefaultScheduleSettings(1)
	s.RestMethod = domain.RestMethodDynamic
	return s
}

func TestRequiredRest_NilPrevious(t *testing.T) {
	policy := NewRestPolicy(dynamicSettings(), nil)
	assert.Zero(t, policy.RequiredRest(nil))
}

func TestRequiredRest_DynamicBase(t *testing.T) {
	policy := NewRestPolicy(dynamicSettings(), nil)

	// a plain 8h day shift gets the base only
	assert.Equal(t, 11.0, policy.RequiredRest(shift("09:00:00", "17:00:00")))
}

func TestRequiredRest_DynamicNightBonus(t *testing.T) {
	policy := NewRestPolicy(dynamicSettings(), nil)

	// 22:00-06:00 is a night shift: 11 + 3
	assert.Equal(t, 14.0, policy.RequiredRest(shift("22:00:00", "06:00:00")))
}

func TestRequiredRest_DynamicLongShiftBonus(t *testing.T) {
	policy := NewRestPolicy(dynamicSettings(), nil)

	// 12h day shift crosses the 10h threshold: 11 + 2
	assert.Equal(t, 13.0, policy.RequiredRest(shift("08:00:00", "20:00:00")))
}

func TestRequiredRest_DynamicMultiplier(t *testing.T) {
	settings := dynamicSettings()
	settings.DynamicRestMultiplier = 1.5

	policy := NewRestPolicy(settings, nil)
	assert.Equal(t, 16.5, policy.RequiredRest(shift("09:00:00", "17:00:00")))
}

func TestRequiredRest_FixedIgnoresBonuses(t *testing.T) {
	settings := dynamicSettings()
	settings.RestMethod = domain.RestMethodFixed

	policy := NewRestPolicy(settings, nil)

	// fixed method returns the base even for a long night shift
	assert.Equal(t, 11.0, policy.RequiredRest(shift("20:00:00", "06:00:00")))
}

func TestRequiredRest_ShiftBasedTable(t *testing.T) {
	settings := dynamicSettings()
	settings.RestMethod = domain.RestMethodShiftBased

	policy := NewRestPolicy(settings, nil)

	tests := []struct {
		name  string
		shift *domain.PositionShift
		want  float64
	}{
		{"morning", shift("06:00:00", "14:00:00"), 8},
		{"day", shift("10:00:00", "18:00:00"), 10},
		{"evening", shift("15:00:00", "22:00:00"), 11},
		{"night gets table value plus night bonus", shift("22:00:00", "06:00:00"), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.RequiredRest(tt.shift))
		})
	}
}

func TestNewRestPolicy_LegalMinimumFloorsBase(t *testing.T) {
	settings := dynamicSettings()
	settings.BaseMinRestHours = 8

	legal := []*domain.LegalConstraint{
		{Type: domain.LegalMinRestBetweenShifts, Value: 10, IsActive: true},
		{Type: domain.LegalMinRestBetweenShifts, Value: 12, IsActive: false}, // inactive, ignored
	}

	policy := NewRestPolicy(settings, legal)
	assert.Equal(t, 10.0, policy.BaseHours)
}

func TestNewRestPolicy_ConfiguredBaseAboveLegalWins(t *testing.T) {
	settings := dynamicSettings()
	settings.BaseMinRestHours = 12

	legal := []*domain.LegalConstraint{
		{Type: domain.LegalMinRestBetweenShifts, Value: 11, IsActive: true},
	}

	policy := NewRestPolicy(settings, legal)
	assert.Equal(t, 12.0, policy.BaseHours)
}

func TestRequiredRestFor_UsesWorkedDuration(t *testing.T) {
	policy := NewRestPolicy(dynamicSettings(), nil)
	day := shift("09:00:00", "17:00:00")

	// the 8h template stays under the long-shift threshold, but a 13h
	// worked stretch over the same template earns the bonus
	assert.Equal(t, 11.0, policy.RequiredRest(day))
	assert.Equal(t, 13.0, policy.RequiredRestFor(day, 13))
}

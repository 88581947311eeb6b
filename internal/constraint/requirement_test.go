package constraint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRequiredStaff_FallsBackToPositionHeadcount(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}

	got := ResolveRequiredStaff(nil, pos, 10, date(2026, time.March, 2))
	assert.Equal(t, int32(3), got)
}

func TestResolveRequiredStaff_Precedence(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}
	monday := date(2026, time.March, 2)
	dowMonday := int32(1)

	allDays := &domain.ShiftRequirement{ID: 1, ShiftID: 10, RequiredStaff: 5, IsActive: true}
	weekday := &domain.ShiftRequirement{ID: 2, ShiftID: 10, DayOfWeek: &dowMonday, RequiredStaff: 4, IsActive: true}
	specific := &domain.ShiftRequirement{ID: 3, ShiftID: 10, SpecificDate: &monday, RequiredStaff: 2, IsActive: true}

	// specific date beats day of week beats all days
	got := ResolveRequiredStaff([]*domain.ShiftRequirement{allDays, weekday, specific}, pos, 10, monday)
	assert.Equal(t, int32(2), got)

	got = ResolveRequiredStaff([]*domain.ShiftRequirement{allDays, weekday}, pos, 10, monday)
	assert.Equal(t, int32(4), got)

	got = ResolveRequiredStaff([]*domain.ShiftRequirement{allDays}, pos, 10, monday)
	assert.Equal(t, int32(5), got)
}

func TestResolveRequiredStaff_WeekdayDoesNotMatchOtherDays(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}
	dowMonday := int32(1)
	weekday := &domain.ShiftRequirement{ID: 1, ShiftID: 10, DayOfWeek: &dowMonday, RequiredStaff: 4, IsActive: true}

	tuesday := date(2026, time.March, 3)
	got := ResolveRequiredStaff([]*domain.ShiftRequirement{weekday}, pos, 10, tuesday)
	assert.Equal(t, int32(3), got)
}

func TestResolveRequiredStaff_HighestIDWinsWithinTier(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}
	monday := date(2026, time.March, 2)

	older := &domain.ShiftRequirement{ID: 1, ShiftID: 10, RequiredStaff: 5, IsActive: true}
	newer := &domain.ShiftRequirement{ID: 7, ShiftID: 10, RequiredStaff: 6, IsActive: true}

	got := ResolveRequiredStaff([]*domain.ShiftRequirement{newer, older}, pos, 10, monday)
	assert.Equal(t, int32(6), got)
}

func TestResolveRequiredStaff_FiltersInactiveAndOutOfWindow(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}
	monday := date(2026, time.March, 2)
	until := date(2026, time.February, 1)

	inactive := &domain.ShiftRequirement{ID: 1, ShiftID: 10, RequiredStaff: 9, IsActive: false}
	expired := &domain.ShiftRequirement{ID: 2, ShiftID: 10, RequiredStaff: 8, IsActive: true, ValidUntil: &until}
	otherShift := &domain.ShiftRequirement{ID: 3, ShiftID: 11, RequiredStaff: 7, IsActive: true}

	got := ResolveRequiredStaff([]*domain.ShiftRequirement{inactive, expired, otherShift}, pos, 10, monday)
	assert.Equal(t, int32(3), got)
}

func TestResolveRequiredStaff_ZeroMeansNoStaffing(t *testing.T) {
	pos := &domain.Position{ID: 1, NumOfEmp: 3}
	monday := date(2026, time.March, 2)

	off := &domain.ShiftRequirement{ID: 1, ShiftID: 10, RequiredStaff: 0, IsActive: true}

	// an explicit zero overrides the headcount fallback
	got := ResolveRequiredStaff([]*domain.ShiftRequirement{off}, pos, 10, monday)
	assert.Equal(t, int32(0), got)
}

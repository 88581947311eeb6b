package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func shift(start, end string) *PositionShift {
	return &PositionShift{StartTime: start, EndTime: end}
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 8.0, shift("09:00:00", "17:00:00").DurationHours())
	assert.Equal(t, 8.0, shift("22:00:00", "06:00:00").DurationHours())
	assert.Equal(t, 24.0, shift("08:00:00", "08:00:00").DurationHours())
	assert.Equal(t, 2.5, shift("19:00:00", "21:30:00").DurationHours())
}

func TestCrossesMidnight(t *testing.T) {
	assert.False(t, shift("09:00:00", "17:00:00").CrossesMidnight())
	assert.True(t, shift("22:00:00", "06:00:00").CrossesMidnight())
	assert.True(t, shift("23:00:00", "01:00:00").CrossesMidnight())
}

func TestIsNightShift(t *testing.T) {
	assert.True(t, shift("22:00:00", "06:00:00").IsNightShift())
	assert.True(t, shift("23:30:00", "07:30:00").IsNightShift())
	assert.True(t, shift("21:00:00", "05:00:00").IsNightShift()) // ends before 06:00
	assert.False(t, shift("06:00:00", "14:00:00").IsNightShift())
	assert.False(t, shift("14:00:00", "22:00:00").IsNightShift())
}

func TestKind(t *testing.T) {
	assert.Equal(t, ShiftKindMorning, shift("06:00:00", "14:00:00").Kind())
	assert.Equal(t, ShiftKindDay, shift("10:00:00", "18:00:00").Kind())
	assert.Equal(t, ShiftKindEvening, shift("15:00:00", "21:00:00").Kind())
	assert.Equal(t, ShiftKindNight, shift("22:00:00", "06:00:00").Kind())
}

func TestEffectiveTimes(t *testing.T) {
	template := shift("09:00:00", "17:00:00")

	regular := &ScheduleAssignment{Type: AssignmentRegular}
	start, end := regular.EffectiveTimes(template)
	assert.Equal(t, "09:00:00", start)
	assert.Equal(t, "17:00:00", end)

	customStart := "10:00:00"
	customEnd := "15:00:00"
	flexible := &ScheduleAssignment{Type: AssignmentFlexible, CustomStartTime: &customStart, CustomEndTime: &customEnd}
	start, end = flexible.EffectiveTimes(template)
	assert.Equal(t, "10:00:00", start)
	assert.Equal(t, "15:00:00", end)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func TestValidateShiftTimes(t *testing.T) {
	ok := &domain.PositionShift{Name: "Day", StartTime: "09:00:00", EndTime: "17:00:00"}
	assert.NoError(t, ValidateShiftTimes(ok))

	overnight := &domain.PositionShift{Name: "Night", StartTime: "22:00:00", EndTime: "06:00:00"}
	assert.NoError(t, ValidateShiftTimes(overnight))

	malformed := &domain.PositionShift{Name: "Broken", StartTime: "9am", EndTime: "17:00:00"}
	assert.Error(t, ValidateShiftTimes(malformed))

	empty := &domain.PositionShift{Name: "Empty", StartTime: "09:00:00", EndTime: "09:00:00"}
	assert.Error(t, ValidateShiftTimes(empty))
}

func TestValidateRequirement(t *testing.T) {
	shifts := []*domain.PositionShift{{ID: 10, PositionID: 1}}

	valid := &domain.ShiftRequirement{PositionID: 1, ShiftID: 10, RequiredStaff: 2}
	assert.NoError(t, ValidateRequirement(valid, shifts))

	negative := &domain.ShiftRequirement{PositionID: 1, ShiftID: 10, RequiredStaff: -1}
	assert.Error(t, ValidateRequirement(negative, shifts))

	badDay := int32(7)
	outOfRange := &domain.ShiftRequirement{PositionID: 1, ShiftID: 10, DayOfWeek: &badDay, RequiredStaff: 1}
	assert.Error(t, ValidateRequirement(outOfRange, shifts))

	wrongShift := &domain.ShiftRequirement{PositionID: 1, ShiftID: 99, RequiredStaff: 1}
	assert.Error(t, ValidateRequirement(wrongShift, shifts))
}

func TestValidateConstraint(t *testing.T) {
	day := int32(1)

	valid := &domain.EmployeeConstraint{EmployeeID: 1, Type: domain.ConstraintCannotWork, DayOfWeek: &day}
	assert.NoError(t, ValidateConstraint(valid))

	unscoped := &domain.EmployeeConstraint{EmployeeID: 1, Type: domain.ConstraintCannotWork}
	assert.Error(t, ValidateConstraint(unscoped))

	unknownType := &domain.EmployeeConstraint{EmployeeID: 1, Type: "vacation", DayOfWeek: &day}
	assert.Error(t, ValidateConstraint(unknownType))
}

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Noa Ben-David")
	assert.NotEmpty(t, username)
	assert.NotContains(t, username, " ")
	assert.NotContains(t, username, "-")
}

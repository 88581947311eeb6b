package utils

import (
	"fmt"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

// ValidateShiftTimes checks that a shift's times parse and describe a
// non-empty interval. End before start is legal, it means the shift
// crosses midnight.
func ValidateShiftTimes(shift *domain.PositionShift) error {
	start, err := time.Parse(domain.TimeOfDayLayout, shift.StartTime)
	if err != nil {
		return fmt.Errorf("shift %q has a malformed start time %q", shift.Name, shift.StartTime)
	}
	end, err := time.Parse(domain.TimeOfDayLayout, shift.EndTime)
	if err != nil {
		return fmt.Errorf("shift %q has a malformed end time %q", shift.Name, shift.EndTime)
	}
	if start.Equal(end) {
		return fmt.Errorf("shift %q has zero duration", shift.Name)
	}
	return nil
}

// ValidateRequirement checks a staffing requirement against the shifts of
// its position before it is stored.
func ValidateRequirement(req *domain.ShiftRequirement, shifts []*domain.PositionShift) error {
	if req.RequiredStaff < 0 {
		return fmt.Errorf("requirement for shift %d has a negative staff count", req.ShiftID)
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return fmt.Errorf("requirement for shift %d has day of week %d out of range", req.ShiftID, *req.DayOfWeek)
	}
	if req.DayOfWeek != nil && req.SpecificDate != nil {
		return fmt.Errorf("requirement for shift %d sets both a day of week and a specific date", req.ShiftID)
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidFrom.After(*req.ValidUntil) {
		return fmt.Errorf("requirement for shift %d has an inverted validity window", req.ShiftID)
	}

	for _, shift := range shifts {
		if shift.ID == req.ShiftID && shift.PositionID == req.PositionID {
			return nil
		}
	}
	return fmt.Errorf("requirement references shift %d which does not belong to position %d", req.ShiftID, req.PositionID)
}

// ValidateConstraint checks an employee directive's scope fields.
func ValidateConstraint(ec *domain.EmployeeConstraint) error {
	if ec.SpecificDate == nil && ec.DayOfWeek == nil {
		return fmt.Errorf("constraint for employee %d has neither a date nor a day of week", ec.EmployeeID)
	}
	if ec.SpecificDate != nil && ec.DayOfWeek != nil {
		return fmt.Errorf("constraint for employee %d sets both a date and a day of week", ec.EmployeeID)
	}
	if ec.DayOfWeek != nil && (*ec.DayOfWeek < 0 || *ec.DayOfWeek > 6) {
		return fmt.Errorf("constraint for employee %d has day of week %d out of range", ec.EmployeeID, *ec.DayOfWeek)
	}
	switch ec.Type {
	case domain.ConstraintCannotWork, domain.ConstraintPreferWork:
	default:
		return fmt.Errorf("constraint for employee %d has unknown type %q", ec.EmployeeID, ec.Type)
	}
	return nil
}

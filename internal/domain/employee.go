package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

type Employee struct {
	ID                int64     `json:"id"`
	SiteID            int64     `json:"siteID"`
	Username          string    `json:"username"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	DefaultPositionID *int64    `json:"defaultPositionID"`
	Locale            string    `json:"locale"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}

type ConstraintType string

const (
	ConstraintCannotWork ConstraintType = "cannot_work" // hard
	ConstraintPreferWork ConstraintType = "prefer_work" // soft
)

type ConstraintStatus string

const (
	ConstraintActive  ConstraintStatus = "active"
	ConstraintExpired ConstraintStatus = "expired"
)

// EmployeeConstraint is a per-employee directive scoped to a specific date
// or to a recurring day of week, optionally narrowed to a single shift.
type EmployeeConstraint struct {
	ID           int64            `json:"id"`
	EmployeeID   int64            `json:"employeeID"`
	Type         ConstraintType   `json:"type"`
	SpecificDate *time.Time       `json:"specificDate"`
	DayOfWeek    *int32           `json:"dayOfWeek"`
	ShiftID      *int64           `json:"shiftID"` // nil = whole day
	Status       ConstraintStatus `json:"status"`
	ExpiresAt    *time.Time       `json:"expiresAt"`
	CreatedAt    time.Time        `json:"createdAt"`
	Version      int32            `json:"-"`
}

// Applies reports whether the constraint binds on the given calendar date.
// The day-of-week scope uses Go weekday numbering, 0 = Sunday.
func (ec *EmployeeConstraint) Applies(date time.Time) bool {
	if ec.Status != ConstraintActive {
		return false
	}
	if ec.ExpiresAt != nil && date.After(*ec.ExpiresAt) {
		return false
	}
	if ec.SpecificDate != nil {
		return sameDate(*ec.SpecificDate, date)
	}
	if ec.DayOfWeek != nil {
		return *ec.DayOfWeek == int32(date.Weekday())
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

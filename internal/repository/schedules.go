package repository

import (
	"context"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

// ReplaceSchedule supersedes any previous schedule for the same (site,
// week) and stores the new header together with its assignment set, all in
// one transaction.
func (r *Repository) ReplaceSchedule(schedule *domain.Schedule, assignments []*domain.ScheduleAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedules WHERE site_id = $1 AND start_date = $2`
	if _, err := tx.ExecContext(ctx, query, schedule.SiteID, schedule.StartDate); err != nil {
		return err
	}

	query = `
		INSERT INTO schedules (site_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, schedule.SiteID, schedule.StartDate, schedule.EndDate, schedule.Status).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	for _, sa := range assignments {
		query := `
			INSERT INTO schedule_assignments (
				schedule_id, employee_id, shift_id, position_id, work_date,
				status, assignment_type, custom_start_time, custom_end_time, covering_for_id
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, version
		`
		if err := tx.QueryRowContext(ctx, query,
			schedule.ID, sa.EmployeeID, sa.ShiftID, sa.PositionID, sa.WorkDate,
			sa.Status, sa.Type, sa.CustomStartTime, sa.CustomEndTime, sa.CoveringForID,
		).Scan(&sa.ID, &sa.CreatedAt, &sa.Version); err != nil {
			return err
		}
		sa.ScheduleID = schedule.ID
	}

	return tx.Commit()
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, start_date, end_date, status, created_at, version
		FROM schedules
		WHERE id = $1
	`

	s := &domain.Schedule{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.SiteID, &s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt, &s.Version); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) GetSchedulesBySiteID(siteID int64) ([]*domain.Schedule, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, start_date, end_date, status, created_at, version
		FROM schedules
		WHERE site_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		s := &domain.Schedule{}
		if err := rows.Scan(&s.ID, &s.SiteID, &s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt, &s.Version); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

func (r *Repository) GetAssignmentsByScheduleID(scheduleID int64) ([]*domain.ScheduleAssignment, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, schedule_id, employee_id, shift_id, position_id, work_date,
			status, assignment_type, custom_start_time, custom_end_time, covering_for_id,
			created_at, version
		FROM schedule_assignments
		WHERE schedule_id = $1
		ORDER BY work_date, shift_id, employee_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.ScheduleAssignment
	for rows.Next() {
		sa := &domain.ScheduleAssignment{}
		if err := rows.Scan(
			&sa.ID, &sa.ScheduleID, &sa.EmployeeID, &sa.ShiftID, &sa.PositionID, &sa.WorkDate,
			&sa.Status, &sa.Type, &sa.CustomStartTime, &sa.CustomEndTime, &sa.CoveringForID,
			&sa.CreatedAt, &sa.Version,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, sa)
	}

	return assignments, rows.Err()
}

// PublishSchedule flips a draft to published, guarded by the version the
// caller read.
func (r *Repository) PublishSchedule(schedule *domain.Schedule) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE schedules
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	schedule.Status = domain.SchedulePublished
	// sql.ErrNoRows here means the version guard lost the race
	return r.dbpool.QueryRowContext(ctx, query, schedule.Status, schedule.ID, schedule.Version).Scan(&schedule.Version)
}

// AssignedEmployee is the per-employee shift count of one schedule, used
// for the publish notification mails.
type AssignedEmployee struct {
	Employee *domain.Employee
	Shifts   int
}

func (r *Repository) GetAssignedEmployees(scheduleID int64) ([]*AssignedEmployee, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT e.id, e.site_id, e.username, e.full_name, e.email, e.role, e.locale, COUNT(sa.id)
		FROM schedule_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		WHERE sa.schedule_id = $1
		GROUP BY e.id, e.site_id, e.username, e.full_name, e.email, e.role, e.locale
		ORDER BY e.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assigned []*AssignedEmployee
	for rows.Next() {
		ae := &AssignedEmployee{Employee: &domain.Employee{}}
		emp := ae.Employee
		if err := rows.Scan(&emp.ID, &emp.SiteID, &emp.Username, &emp.FullName, &emp.Email, &emp.Role, &emp.Locale, &ae.Shifts); err != nil {
			return nil, err
		}
		assigned = append(assigned, ae)
	}

	return assigned, rows.Err()
}

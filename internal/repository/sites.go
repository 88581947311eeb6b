package repository

import (
	"context"
	"time"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func (r *Repository) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) CreateWorkSite(site *domain.WorkSite) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO work_sites (name, timezone, week_start_day)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, site.Name, site.Timezone, site.WeekStartDay).Scan(&site.ID, &site.CreatedAt, &site.Version)
}

// EnsureWorkSite creates the site if no site with the same name exists yet,
// and fills in the stored row either way. Used by the bootstrap path.
func (r *Repository) EnsureWorkSite(site *domain.WorkSite) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO work_sites (name, timezone, week_start_day)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, timezone, week_start_day, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, site.Name, site.Timezone, site.WeekStartDay).
		Scan(&site.ID, &site.Timezone, &site.WeekStartDay, &site.CreatedAt, &site.Version)
}

func (r *Repository) GetWorkSiteByID(id int64) (*domain.WorkSite, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, name, timezone, week_start_day, created_at, version
		FROM work_sites
		WHERE id = $1
	`

	site := &domain.WorkSite{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&site.ID, &site.Name, &site.Timezone, &site.WeekStartDay, &site.CreatedAt, &site.Version); err != nil {
		return nil, err
	}

	return site, nil
}

func (r *Repository) CreatePosition(pos *domain.Position) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO positions (site_id, name, profession, num_of_emp, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, pos.SiteID, pos.Name, pos.Profession, pos.NumOfEmp, pos.SortOrder, pos.IsActive).Scan(&pos.ID, &pos.CreatedAt, &pos.Version)
}

func (r *Repository) GetPositionsBySiteID(siteID int64) ([]*domain.Position, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, name, profession, num_of_emp, sort_order, is_active, created_at, version
		FROM positions
		WHERE site_id = $1
		ORDER BY sort_order, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*domain.Position
	for rows.Next() {
		pos := &domain.Position{}
		if err := rows.Scan(&pos.ID, &pos.SiteID, &pos.Name, &pos.Profession, &pos.NumOfEmp, &pos.SortOrder, &pos.IsActive, &pos.CreatedAt, &pos.Version); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}

	return positions, rows.Err()
}

func (r *Repository) CreatePositionShift(shift *domain.PositionShift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO position_shifts (position_id, name, start_time, end_time, is_flexible, spans_shift_ids, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		shift.PositionID, shift.Name, shift.StartTime, shift.EndTime,
		shift.IsFlexible, int64Array(shift.SpansShiftID), shift.SortOrder, shift.IsActive,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.Version)
}

func (r *Repository) GetShiftsBySiteID(siteID int64) ([]*domain.PositionShift, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT ps.id, ps.position_id, ps.name, ps.start_time, ps.end_time, ps.is_flexible, ps.spans_shift_ids, ps.sort_order, ps.is_active, ps.created_at, ps.version
		FROM position_shifts ps
		JOIN positions p ON p.id = ps.position_id
		WHERE p.site_id = $1
		ORDER BY ps.sort_order, ps.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*domain.PositionShift
	for rows.Next() {
		shift := &domain.PositionShift{}
		var spans []byte
		if err := rows.Scan(&shift.ID, &shift.PositionID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.IsFlexible, &spans, &shift.SortOrder, &shift.IsActive, &shift.CreatedAt, &shift.Version); err != nil {
			return nil, err
		}
		shift.SpansShiftID = parseInt64Array(spans)
		shifts = append(shifts, shift)
	}

	return shifts, rows.Err()
}

func (r *Repository) CreateShiftRequirement(req *domain.ShiftRequirement) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO shift_requirements (position_id, shift_id, day_of_week, specific_date, required_staff, valid_from, valid_until, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		req.PositionID, req.ShiftID, req.DayOfWeek, req.SpecificDate,
		req.RequiredStaff, req.ValidFrom, req.ValidUntil, req.IsActive,
	).Scan(&req.ID, &req.CreatedAt, &req.Version)
}

func (r *Repository) GetRequirementsBySiteID(siteID int64) ([]*domain.ShiftRequirement, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT sr.id, sr.position_id, sr.shift_id, sr.day_of_week, sr.specific_date, sr.required_staff, sr.valid_from, sr.valid_until, sr.is_active, sr.created_at, sr.version
		FROM shift_requirements sr
		JOIN positions p ON p.id = sr.position_id
		WHERE p.site_id = $1
		ORDER BY sr.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*domain.ShiftRequirement
	for rows.Next() {
		req := &domain.ShiftRequirement{}
		if err := rows.Scan(&req.ID, &req.PositionID, &req.ShiftID, &req.DayOfWeek, &req.SpecificDate, &req.RequiredStaff, &req.ValidFrom, &req.ValidUntil, &req.IsActive, &req.CreatedAt, &req.Version); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

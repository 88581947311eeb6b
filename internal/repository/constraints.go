package repository

import (
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func (r *Repository) CreateEmployeeConstraint(ec *domain.EmployeeConstraint) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO employee_constraints (employee_id, type, specific_date, day_of_week, shift_id, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		ec.EmployeeID, ec.Type, ec.SpecificDate, ec.DayOfWeek, ec.ShiftID, ec.Status, ec.ExpiresAt,
	).Scan(&ec.ID, &ec.CreatedAt, &ec.Version)
}

// GetActiveConstraintsBySiteID returns the active constraints of every
// employee of the site.
func (r *Repository) GetActiveConstraintsBySiteID(siteID int64) ([]*domain.EmployeeConstraint, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT ec.id, ec.employee_id, ec.type, ec.specific_date, ec.day_of_week, ec.shift_id, ec.status, ec.expires_at, ec.created_at, ec.version
		FROM employee_constraints ec
		JOIN employees e ON e.id = ec.employee_id
		WHERE e.site_id = $1 AND ec.status = 'active'
		ORDER BY ec.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var constraints []*domain.EmployeeConstraint
	for rows.Next() {
		ec := &domain.EmployeeConstraint{}
		if err := rows.Scan(&ec.ID, &ec.EmployeeID, &ec.Type, &ec.SpecificDate, &ec.DayOfWeek, &ec.ShiftID, &ec.Status, &ec.ExpiresAt, &ec.CreatedAt, &ec.Version); err != nil {
			return nil, err
		}
		constraints = append(constraints, ec)
	}

	return constraints, rows.Err()
}

func (r *Repository) CreateLegalConstraint(lc *domain.LegalConstraint) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO legal_constraints (site_id, name, type, value, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, lc.SiteID, lc.Name, lc.Type, lc.Value, lc.IsActive).Scan(&lc.ID, &lc.CreatedAt, &lc.Version)
}

func (r *Repository) GetLegalConstraintsBySiteID(siteID int64) ([]*domain.LegalConstraint, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, name, type, value, is_active, created_at, version
		FROM legal_constraints
		WHERE site_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.LegalConstraint
	for rows.Next() {
		lc := &domain.LegalConstraint{}
		if err := rows.Scan(&lc.ID, &lc.SiteID, &lc.Name, &lc.Type, &lc.Value, &lc.IsActive, &lc.CreatedAt, &lc.Version); err != nil {
			return nil, err
		}
		rules = append(rules, lc)
	}

	return rules, rows.Err()
}

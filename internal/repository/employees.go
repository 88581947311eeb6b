package repository

import (
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO employees (site_id, username, password_hash, full_name, email, role, default_position_id, locale, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		emp.SiteID, emp.Username, emp.PasswordHash, emp.FullName, emp.Email,
		emp.Role, emp.DefaultPositionID, emp.Locale, emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.Version)
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, username, password_hash, full_name, email, role, default_position_id, locale, is_active, created_at, version
		FROM employees
		WHERE id = $1
	`

	emp := &domain.Employee{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(
		&emp.ID, &emp.SiteID, &emp.Username, &emp.PasswordHash, &emp.FullName, &emp.Email,
		&emp.Role, &emp.DefaultPositionID, &emp.Locale, &emp.IsActive, &emp.CreatedAt, &emp.Version,
	); err != nil {
		return nil, err
	}

	return emp, nil
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, username, password_hash, full_name, email, role, default_position_id, locale, is_active, created_at, version
		FROM employees
		WHERE username = $1
	`

	emp := &domain.Employee{}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(
		&emp.ID, &emp.SiteID, &emp.Username, &emp.PasswordHash, &emp.FullName, &emp.Email,
		&emp.Role, &emp.DefaultPositionID, &emp.Locale, &emp.IsActive, &emp.CreatedAt, &emp.Version,
	); err != nil {
		return nil, err
	}

	return emp, nil
}

// GetActiveEmployeesBySiteID returns the roster eligible for generation.
func (r *Repository) GetActiveEmployeesBySiteID(siteID int64) ([]*domain.Employee, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, site_id, username, password_hash, full_name, email, role, default_position_id, locale, is_active, created_at, version
		FROM employees
		WHERE site_id = $1 AND is_active = TRUE
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		emp := &domain.Employee{}
		if err := rows.Scan(
			&emp.ID, &emp.SiteID, &emp.Username, &emp.PasswordHash, &emp.FullName, &emp.Email,
			&emp.Role, &emp.DefaultPositionID, &emp.Locale, &emp.IsActive, &emp.CreatedAt, &emp.Version,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

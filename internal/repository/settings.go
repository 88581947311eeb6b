package repository

import (
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func (r *Repository) UpsertScheduleSettings(s *domain.ScheduleSettings) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO schedule_settings (
			site_id, max_consecutive_work_days, base_min_rest_hours, rest_method,
			dynamic_rest_multiplier, max_shifts_per_day, night_shift_rest_bonus,
			long_shift_threshold_hours, long_shift_rest_bonus,
			generation_day, generation_time, deadline_hours_before
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (site_id) DO UPDATE SET
			max_consecutive_work_days = EXCLUDED.max_consecutive_work_days,
			base_min_rest_hours = EXCLUDED.base_min_rest_hours,
			rest_method = EXCLUDED.rest_method,
			dynamic_rest_multiplier = EXCLUDED.dynamic_rest_multiplier,
			max_shifts_per_day = EXCLUDED.max_shifts_per_day,
			night_shift_rest_bonus = EXCLUDED.night_shift_rest_bonus,
			long_shift_threshold_hours = EXCLUDED.long_shift_threshold_hours,
			long_shift_rest_bonus = EXCLUDED.long_shift_rest_bonus,
			generation_day = EXCLUDED.generation_day,
			generation_time = EXCLUDED.generation_time,
			deadline_hours_before = EXCLUDED.deadline_hours_before,
			version = schedule_settings.version + 1
		RETURNING created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		s.SiteID, s.MaxConsecutiveWorkDays, s.BaseMinRestHours, s.RestMethod,
		s.DynamicRestMultiplier, s.MaxShiftsPerDay, s.NightShiftRestBonus,
		s.LongShiftThresholdHours, s.LongShiftRestBonus,
		s.GenerationDay, s.GenerationTime, s.DeadlineHoursBefore,
	).Scan(&s.CreatedAt, &s.Version)
}

func (r *Repository) GetScheduleSettings(siteID int64) (*domain.ScheduleSettings, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT site_id, max_consecutive_work_days, base_min_rest_hours, rest_method,
			dynamic_rest_multiplier, max_shifts_per_day, night_shift_rest_bonus,
			long_shift_threshold_hours, long_shift_rest_bonus,
			generation_day, generation_time, deadline_hours_before,
			created_at, version
		FROM schedule_settings
		WHERE site_id = $1
	`

	s := &domain.ScheduleSettings{}
	if err := r.dbpool.QueryRowContext(ctx, query, siteID).Scan(
		&s.SiteID, &s.MaxConsecutiveWorkDays, &s.BaseMinRestHours, &s.RestMethod,
		&s.DynamicRestMultiplier, &s.MaxShiftsPerDay, &s.NightShiftRestBonus,
		&s.LongShiftThresholdHours, &s.LongShiftRestBonus,
		&s.GenerationDay, &s.GenerationTime, &s.DeadlineHoursBefore,
		&s.CreatedAt, &s.Version,
	); err != nil {
		return nil, err
	}

	return s, nil
}

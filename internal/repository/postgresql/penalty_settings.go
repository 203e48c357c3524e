package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) penalty.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `
	id, business_unit_id, hourly_penalty_rate, leave_penalty_rate,
	late_arrival_threshold_minutes, early_departure_threshold_minutes,
	working_hours_per_day, expected_check_in_minutes, expected_check_out_minutes,
	paid_leaves_per_month, weekend_penalty_enabled, holiday_penalty_enabled,
	auto_apply_penalties, created_at, updated_at`

func scanSettings(row pgx.Row) (penalty.Settings, error) {
	var s penalty.Settings
	err := row.Scan(
		&s.ID, &s.BusinessUnitID, &s.HourlyPenaltyRate, &s.LeavePenaltyRate,
		&s.LateArrivalThresholdMinutes, &s.EarlyDepartureThresholdMinutes,
		&s.WorkingHoursPerDay, &s.ExpectedCheckInMinutes, &s.ExpectedCheckOutMinutes,
		&s.PaidLeavesPerMonth, &s.WeekendPenaltyEnabled, &s.HolidayPenaltyEnabled,
		&s.AutoApplyPenalties, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Get implements penalty.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context, businessUnitID string) (penalty.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + settingsColumns + `
		FROM penalty_settings
		WHERE business_unit_id = $1
	`

	s, err := scanSettings(q.QueryRow(ctx, query, businessUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return penalty.Settings{}, penalty.ErrSettingsNotFound
		}
		return penalty.Settings{}, fmt.Errorf("failed to get penalty settings: %w", err)
	}

	return s, nil
}

// Upsert implements penalty.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s penalty.Settings) (penalty.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalty_settings (
			business_unit_id, hourly_penalty_rate, leave_penalty_rate,
			late_arrival_threshold_minutes, early_departure_threshold_minutes,
			working_hours_per_day, expected_check_in_minutes, expected_check_out_minutes,
			paid_leaves_per_month, weekend_penalty_enabled, holiday_penalty_enabled,
			auto_apply_penalties
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (business_unit_id) DO UPDATE SET
			hourly_penalty_rate = EXCLUDED.hourly_penalty_rate,
			leave_penalty_rate = EXCLUDED.leave_penalty_rate,
			late_arrival_threshold_minutes = EXCLUDED.late_arrival_threshold_minutes,
			early_departure_threshold_minutes = EXCLUDED.early_departure_threshold_minutes,
			working_hours_per_day = EXCLUDED.working_hours_per_day,
			expected_check_in_minutes = EXCLUDED.expected_check_in_minutes,
			expected_check_out_minutes = EXCLUDED.expected_check_out_minutes,
			paid_leaves_per_month = EXCLUDED.paid_leaves_per_month,
			weekend_penalty_enabled = EXCLUDED.weekend_penalty_enabled,
			holiday_penalty_enabled = EXCLUDED.holiday_penalty_enabled,
			auto_apply_penalties = EXCLUDED.auto_apply_penalties,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	updated, err := scanSettings(q.QueryRow(ctx, query,
		s.BusinessUnitID,
		s.HourlyPenaltyRate,
		s.LeavePenaltyRate,
		s.LateArrivalThresholdMinutes,
		s.EarlyDepartureThresholdMinutes,
		s.WorkingHoursPerDay,
		s.ExpectedCheckInMinutes,
		s.ExpectedCheckOutMinutes,
		s.PaidLeavesPerMonth,
		s.WeekendPenaltyEnabled,
		s.HolidayPenaltyEnabled,
		s.AutoApplyPenalties,
	))
	if err != nil {
		return penalty.Settings{}, fmt.Errorf("failed to upsert penalty settings: %w", err)
	}

	return updated, nil
}

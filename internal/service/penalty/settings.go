package penalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settingsRepo penalty.SettingsRepository
}

func NewSettingsService(settingsRepo penalty.SettingsRepository) penalty.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Get implements penalty.SettingsService. The first read for a business
// unit materializes the default configuration.
func (s *SettingsServiceImpl) Get(ctx context.Context) (penalty.SettingsResponse, error) {
	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return penalty.SettingsResponse{}, err
	}

	settings, err := s.settingsRepo.Get(ctx, businessUnitID)
	if err != nil {
		if !errors.Is(err, penalty.ErrSettingsNotFound) {
			return penalty.SettingsResponse{}, fmt.Errorf("failed to get penalty settings: %w", err)
		}

		settings, err = s.settingsRepo.Upsert(ctx, penalty.DefaultSettings(businessUnitID))
		if err != nil {
			return penalty.SettingsResponse{}, fmt.Errorf("failed to create default penalty settings: %w", err)
		}
	}

	return penalty.SettingsToResponse(settings), nil
}

// Update implements penalty.SettingsService. Settings changes only
// affect future evaluations; penalties already applied stand.
func (s *SettingsServiceImpl) Update(ctx context.Context, req penalty.UpdateSettingsRequest) (penalty.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.SettingsResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return penalty.SettingsResponse{}, err
	}

	current, err := s.settingsRepo.Get(ctx, businessUnitID)
	if err != nil {
		if !errors.Is(err, penalty.ErrSettingsNotFound) {
			return penalty.SettingsResponse{}, fmt.Errorf("failed to get penalty settings: %w", err)
		}
		current = penalty.DefaultSettings(businessUnitID)
	}

	if req.HourlyPenaltyRate != nil {
		current.HourlyPenaltyRate = *req.HourlyPenaltyRate
	}
	if req.LeavePenaltyRate != nil {
		current.LeavePenaltyRate = *req.LeavePenaltyRate
	}
	if req.LateArrivalThresholdMinutes != nil {
		current.LateArrivalThresholdMinutes = *req.LateArrivalThresholdMinutes
	}
	if req.EarlyDepartureThresholdMinutes != nil {
		current.EarlyDepartureThresholdMinutes = *req.EarlyDepartureThresholdMinutes
	}
	if req.WorkingHoursPerDay != nil {
		current.WorkingHoursPerDay = *req.WorkingHoursPerDay
	}
	if req.ExpectedCheckInTime != nil {
		t, _ := validator.IsValidTimeOfDay(*req.ExpectedCheckInTime)
		current.ExpectedCheckInMinutes = validator.MinutesOfDay(t)
	}
	if req.ExpectedCheckOutTime != nil {
		t, _ := validator.IsValidTimeOfDay(*req.ExpectedCheckOutTime)
		current.ExpectedCheckOutMinutes = validator.MinutesOfDay(t)
	}
	if req.PaidLeavesPerMonth != nil {
		current.PaidLeavesPerMonth = *req.PaidLeavesPerMonth
	}
	if req.WeekendPenaltyEnabled != nil {
		current.WeekendPenaltyEnabled = *req.WeekendPenaltyEnabled
	}
	if req.HolidayPenaltyEnabled != nil {
		current.HolidayPenaltyEnabled = *req.HolidayPenaltyEnabled
	}
	if req.AutoApplyPenalties != nil {
		current.AutoApplyPenalties = *req.AutoApplyPenalties
	}

	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return penalty.SettingsResponse{}, fmt.Errorf("failed to update penalty settings: %w", err)
	}

	return penalty.SettingsToResponse(updated), nil
}

package penalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
)

// ApplierImpl evaluates the rule engine for a finalized attendance
// event and persists the resulting penalties. A day is only evaluated
// when the state machine finalizes it; re-evaluation happens solely
// through explicit administrative action.
type ApplierImpl struct {
	engine         *Engine
	penaltyRepo    penalty.PenaltyRepository
	settingsRepo   penalty.SettingsRepository
	attendanceRepo attendance.Repository
}

func NewApplier(
	engine *Engine,
	penaltyRepo penalty.PenaltyRepository,
	settingsRepo penalty.SettingsRepository,
	attendanceRepo attendance.Repository,
) penalty.Applier {
	return &ApplierImpl{
		engine:         engine,
		penaltyRepo:    penaltyRepo,
		settingsRepo:   settingsRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (a *ApplierImpl) loadSettings(ctx context.Context, businessUnitID string) (penalty.Settings, error) {
	settings, err := a.settingsRepo.Get(ctx, businessUnitID)
	if err != nil {
		if errors.Is(err, penalty.ErrSettingsNotFound) {
			return penalty.DefaultSettings(businessUnitID), nil
		}
		return penalty.Settings{}, fmt.Errorf("failed to load penalty settings: %w", err)
	}
	return settings, nil
}

func (a *ApplierImpl) persistDrafts(ctx context.Context, record attendance.Record, drafts []Draft) ([]penalty.Penalty, error) {
	applied := make([]penalty.Penalty, 0, len(drafts))
	for _, draft := range drafts {
		created, err := a.penaltyRepo.Create(ctx, penalty.Penalty{
			BusinessUnitID: record.BusinessUnitID,
			EmployeeID:     record.EmployeeID,
			Date:           record.Date,
			Type:           draft.Type,
			// Rounding happens here and nowhere earlier.
			Amount:    draft.Amount.Round(2),
			Reason:    draft.Reason,
			Status:    penalty.StatusActive,
			AppliedAt: time.Now().UTC(),
		})
		if err != nil {
			return applied, fmt.Errorf("failed to persist %s penalty: %w", draft.Type, err)
		}
		applied = append(applied, created)
	}
	return applied, nil
}

// ApplyForCheckout implements penalty.Applier.
func (a *ApplierImpl) ApplyForCheckout(ctx context.Context, record attendance.Record) ([]penalty.Penalty, error) {
	settings, err := a.loadSettings(ctx, record.BusinessUnitID)
	if err != nil {
		return nil, err
	}

	if !settings.AutoApplyPenalties {
		return nil, nil
	}

	drafts := a.engine.EvaluateCheckout(record, settings)
	return a.persistDrafts(ctx, record, drafts)
}

// ApplyForLeave implements penalty.Applier.
func (a *ApplierImpl) ApplyForLeave(ctx context.Context, record attendance.Record) ([]penalty.Penalty, error) {
	settings, err := a.loadSettings(ctx, record.BusinessUnitID)
	if err != nil {
		return nil, err
	}

	if !settings.AutoApplyPenalties {
		return nil, nil
	}

	priorLeaveDays, err := a.attendanceRepo.CountLeaveDaysInMonth(ctx, record.EmployeeID, record.Date, record.BusinessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to count leave days: %w", err)
	}

	drafts := a.engine.EvaluateLeave(record.Date, priorLeaveDays, settings)
	return a.persistDrafts(ctx, record, drafts)
}

package penalty

import (
	"context"
	"fmt"
	"time"

	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// LifecycleServiceImpl mutates penalty state after application. It
// never touches salary figures: callers recompute salaries after a
// removal.
type LifecycleServiceImpl struct {
	penaltyRepo penalty.PenaltyRepository
}

func NewLifecycleService(penaltyRepo penalty.PenaltyRepository) penalty.LifecycleService {
	return &LifecycleServiceImpl{penaltyRepo: penaltyRepo}
}

// Every removal is stamped with the acting user; a token without a
// user identity cannot remove penalties.
var errMissingActor = validator.ValidationErrors{{Field: "actor", Message: "removal requires an acting user"}}

// CreateManual implements penalty.LifecycleService.
func (s *LifecycleServiceImpl) CreateManual(ctx context.Context, req penalty.CreateManualRequest) (penalty.PenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.PenaltyResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.penaltyRepo.Create(ctx, penalty.Penalty{
		BusinessUnitID: businessUnitID,
		EmployeeID:     req.EmployeeID,
		Date:           date,
		Type:           penalty.TypeManual,
		Amount:         req.Amount.Round(2),
		Reason:         req.Reason,
		Status:         penalty.StatusActive,
		AppliedAt:      time.Now().UTC(),
	})
	if err != nil {
		return penalty.PenaltyResponse{}, fmt.Errorf("failed to create manual penalty: %w", err)
	}

	return penalty.ToResponse(created), nil
}

// RemoveSingle implements penalty.LifecycleService.
func (s *LifecycleServiceImpl) RemoveSingle(ctx context.Context, req penalty.RemoveRequest) (penalty.PenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.PenaltyResponse{}, err
	}

	businessUnitID, actor, err := getClaimsFromContext(ctx)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}
	if validator.IsEmpty(actor) {
		return penalty.PenaltyResponse{}, errMissingActor
	}

	removed, err := s.penaltyRepo.MarkRemoved(ctx, req.PenaltyID, businessUnitID, actor, time.Now().UTC(), req.Reason)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}

	return penalty.ToResponse(removed), nil
}

func (s *LifecycleServiceImpl) removeAll(ctx context.Context, penalties []penalty.Penalty, businessUnitID, actor, reason string) ([]penalty.PenaltyResponse, error) {
	now := time.Now().UTC()
	removed := make([]penalty.PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		r, err := s.penaltyRepo.MarkRemoved(ctx, p.ID, businessUnitID, actor, now, reason)
		if err != nil {
			return removed, fmt.Errorf("failed to remove penalty %s: %w", p.ID, err)
		}
		removed = append(removed, penalty.ToResponse(r))
	}
	return removed, nil
}

// RemoveForDay implements penalty.LifecycleService. No active penalties
// for the day is a no-op, not an error.
func (s *LifecycleServiceImpl) RemoveForDay(ctx context.Context, req penalty.RemoveForDayRequest) ([]penalty.PenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	businessUnitID, actor, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if validator.IsEmpty(actor) {
		return nil, errMissingActor
	}

	date, _ := validator.IsValidDate(req.Date)
	active, err := s.penaltyRepo.ListActiveForDay(ctx, req.EmployeeID, date, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties for day: %w", err)
	}

	return s.removeAll(ctx, active, businessUnitID, actor, req.Reason)
}

// RemoveForMonth implements penalty.LifecycleService.
func (s *LifecycleServiceImpl) RemoveForMonth(ctx context.Context, req penalty.RemoveForMonthRequest) ([]penalty.PenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	businessUnitID, actor, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if validator.IsEmpty(actor) {
		return nil, errMissingActor
	}

	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	active, err := s.penaltyRepo.ListActiveForRange(ctx, req.EmployeeID, monthStart, monthEnd, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties for month: %w", err)
	}

	return s.removeAll(ctx, active, businessUnitID, actor, req.Reason)
}

// RemoveLeaveForDay implements penalty.LifecycleService. Used by leave
// cancellation, so it only touches leave-type penalties.
func (s *LifecycleServiceImpl) RemoveLeaveForDay(ctx context.Context, employeeID string, date time.Time, actor, reason string) ([]penalty.PenaltyResponse, error) {
	if validator.IsEmpty(actor) || validator.IsEmpty(reason) {
		return nil, validator.ValidationErrors{{Field: "reason", Message: "actor and reason are required"}}
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.penaltyRepo.ListActiveForDay(ctx, employeeID, date, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties for day: %w", err)
	}

	leaveOnly := make([]penalty.Penalty, 0, len(active))
	for _, p := range active {
		if p.Type == penalty.TypeLeave {
			leaveOnly = append(leaveOnly, p)
		}
	}

	return s.removeAll(ctx, leaveOnly, businessUnitID, actor, reason)
}

// List implements penalty.LifecycleService.
func (s *LifecycleServiceImpl) List(ctx context.Context, filter penalty.ListFilter) ([]penalty.PenaltyResponse, error) {
	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var penalties []penalty.Penalty
	if filter.IncludeRemoved {
		penalties, err = s.penaltyRepo.ListForRange(ctx, filter.EmployeeID, filter.From, filter.To, businessUnitID)
	} else {
		penalties, err = s.penaltyRepo.ListActiveForRange(ctx, filter.EmployeeID, filter.From, filter.To, businessUnitID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}

	return penalty.ToResponses(penalties), nil
}

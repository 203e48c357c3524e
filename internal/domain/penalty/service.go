package penalty

import (
	"context"
	"time"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
)

// Applier evaluates penalty rules for a finalized attendance event and
// persists the resulting penalties. The attendance state machine calls
// it on checkout and leave-marking; failures there are logged and
// swallowed so the attendance transition is never rolled back.
type Applier interface {
	// ApplyForCheckout runs the non-leave rules for a checked-out record
	ApplyForCheckout(ctx context.Context, record attendance.Record) ([]Penalty, error)

	// ApplyForLeave runs the leave-quota rule for a leave record
	ApplyForLeave(ctx context.Context, record attendance.Record) ([]Penalty, error)
}

// SettingsService manages the per-business-unit penalty configuration.
type SettingsService interface {
	// Get returns the settings, creating defaults on first access
	Get(ctx context.Context) (SettingsResponse, error)

	// Update applies an administrative settings change. Already-applied
	// penalties are not recomputed; only future evaluations see it.
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}

// LifecycleService mutates penalty state after the fact. Every removal
// requires an actor and a reason and is a soft delete.
type LifecycleService interface {
	// CreateManual records an administrative penalty of type manual
	CreateManual(ctx context.Context, req CreateManualRequest) (PenaltyResponse, error)

	// RemoveSingle removes one active penalty; ErrPenaltyNotFound if it
	// is missing, ErrPenaltyAlreadyRemoved if already removed
	RemoveSingle(ctx context.Context, req RemoveRequest) (PenaltyResponse, error)

	// RemoveForDay removes all active penalties for (employee, day);
	// an empty result is a no-op, not an error
	RemoveForDay(ctx context.Context, req RemoveForDayRequest) ([]PenaltyResponse, error)

	// RemoveForMonth removes all active penalties in the calendar month
	RemoveForMonth(ctx context.Context, req RemoveForMonthRequest) ([]PenaltyResponse, error)

	// RemoveLeaveForDay removes active leave-type penalties for a day;
	// leave cancellation uses it
	RemoveLeaveForDay(ctx context.Context, employeeID string, date time.Time, actor, reason string) ([]PenaltyResponse, error)

	// List retrieves penalties for an employee in a date range
	List(ctx context.Context, filter ListFilter) ([]PenaltyResponse, error)
}

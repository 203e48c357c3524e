package penalty

import (
	"context"
	"time"
)

// PenaltyRepository defines data access for penalties. Soft-removed
// rows stay queryable; "active" listings filter on status.
type PenaltyRepository interface {
	// Create persists a penalty and returns it with generated fields
	Create(ctx context.Context, p Penalty) (Penalty, error)

	// GetByID retrieves a penalty regardless of status
	GetByID(ctx context.Context, id string, businessUnitID string) (Penalty, error)

	// MarkRemoved transitions active -> removed, stamping actor, time
	// and reason. Returns ErrPenaltyNotFound when the row is missing,
	// ErrPenaltyAlreadyRemoved when it is not active.
	MarkRemoved(ctx context.Context, id string, businessUnitID string, removedBy string, removedAt time.Time, reason string) (Penalty, error)

	// ListActiveForDay retrieves active penalties for one employee/day
	ListActiveForDay(ctx context.Context, employeeID string, date time.Time, businessUnitID string) ([]Penalty, error)

	// ListActiveForRange retrieves active penalties for an employee with
	// date in [from, to]
	ListActiveForRange(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]Penalty, error)

	// ListForRange retrieves penalties of any status for an employee
	ListForRange(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]Penalty, error)
}

// SettingsRepository stores one settings row per business unit.
type SettingsRepository interface {
	// Get retrieves the business unit's settings; returns
	// ErrSettingsNotFound when none exist yet
	Get(ctx context.Context, businessUnitID string) (Settings, error)

	// Upsert inserts or rewrites the business unit's settings
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

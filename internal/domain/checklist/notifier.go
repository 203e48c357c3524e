package checklist

import (
	"context"
	"time"
)

// Notifier is the checklist subsystem's boundary. All calls are
// fire-and-forget advisories: the attendance state machine logs a
// returned error and carries on, it never fails the primary operation.
type Notifier interface {
	// OnCheckIn announces that the employee started their day
	OnCheckIn(ctx context.Context, employeeID string, date time.Time) error

	// OnLeaveMarked asks the checklist service to reassign the
	// employee's pending work items for the day
	OnLeaveMarked(ctx context.Context, employeeID string, date time.Time) error

	// OnLeaveCancelled asks the checklist service to restore the
	// assignments it moved when the leave was marked
	OnLeaveCancelled(ctx context.Context, employeeID string, date time.Time) error
}

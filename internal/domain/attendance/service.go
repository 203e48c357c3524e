package attendance

import (
	"context"
	"time"
)

// Service is the attendance state machine. For one employee and day the
// legal order is CheckIn -> (StartBreak -> EndBreak)* -> CheckOut, or
// MarkLeave alone; out-of-order calls are rejected, never silently
// absorbed.
type Service interface {
	// CheckIn creates the day's record in checked_in state. Fails with
	// ErrRecordExists if any record already exists for the day.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut finalizes the day and computes worked time. An open break
	// must be ended first. Triggers automatic penalty evaluation when
	// enabled in the business unit's settings (best-effort).
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// StartBreak opens a break; at most one may be in progress.
	StartBreak(ctx context.Context, req BreakRequest) (RecordResponse, error)

	// EndBreak closes the open break and recomputes total break time.
	EndBreak(ctx context.Context, req BreakRequest) (RecordResponse, error)

	// MarkLeave records a full-day leave. Triggers the leave-quota
	// penalty check and asks the checklist service to reassign the
	// employee's work items (best-effort).
	MarkLeave(ctx context.Context, req MarkLeaveRequest) (RecordResponse, error)

	// CancelLeave removes a leave record entirely, soft-removing any
	// leave penalty for that date, so a normal CheckIn can follow.
	CancelLeave(ctx context.Context, recordID string) error

	// Get retrieves a single record
	Get(ctx context.Context, recordID string) (RecordResponse, error)

	// List retrieves records for an employee in a date range
	List(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)

	// ListForDate retrieves every employee's record for one calendar day
	ListForDate(ctx context.Context, date time.Time) (ListRecordsResponse, error)
}

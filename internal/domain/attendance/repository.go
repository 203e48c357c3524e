package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. All methods
// take businessUnitID to keep one showroom division's data isolated
// from another's.
type Repository interface {
	// Create persists a new record together with its breaks
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record and its breaks
	GetByID(ctx context.Context, id string, businessUnitID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar day; returns nil when no record exists (NOT_CHECKED_IN)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (*Record, error)

	// Update rewrites a record and replaces its breaks
	Update(ctx context.Context, record Record) error

	// Delete hard-deletes a record; only leave cancellation uses this
	Delete(ctx context.Context, id string, businessUnitID string) error

	// ListByEmployee retrieves records for an employee in a date range
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]Record, error)

	// ListByDate retrieves all records for one calendar day
	ListByDate(ctx context.Context, date time.Time, businessUnitID string) ([]Record, error)

	// CountLeaveDaysInMonth counts leave records for the employee in the
	// month of date, strictly before date. Feeds the leave quota rule.
	CountLeaveDaysInMonth(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error)
}

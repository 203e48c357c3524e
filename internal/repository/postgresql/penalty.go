package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/database"
)

type penaltyRepository struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.PenaltyRepository {
	return &penaltyRepository{db: db}
}

const penaltyColumns = `
	id, business_unit_id, employee_id, date, type, amount, reason, status,
	applied_at, removed_by, removed_at, removal_reason, created_at, updated_at`

func scanPenalty(row pgx.Row) (penalty.Penalty, error) {
	var p penalty.Penalty
	err := row.Scan(
		&p.ID, &p.BusinessUnitID, &p.EmployeeID, &p.Date, &p.Type, &p.Amount, &p.Reason, &p.Status,
		&p.AppliedAt, &p.RemovedBy, &p.RemovedAt, &p.RemovalReason, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements penalty.PenaltyRepository.
func (r *penaltyRepository) Create(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalties (
			business_unit_id, employee_id, date, type, amount, reason, status, applied_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.BusinessUnitID,
		p.EmployeeID,
		p.Date,
		p.Type,
		p.Amount,
		p.Reason,
		p.Status,
		p.AppliedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return penalty.Penalty{}, fmt.Errorf("failed to create penalty: %w", err)
	}

	return p, nil
}

// GetByID implements penalty.PenaltyRepository.
func (r *penaltyRepository) GetByID(ctx context.Context, id string, businessUnitID string) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + penaltyColumns + `
		FROM penalties
		WHERE id = $1
		  AND business_unit_id = $2
	`

	p, err := scanPenalty(q.QueryRow(ctx, query, id, businessUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return penalty.Penalty{}, penalty.ErrPenaltyNotFound
		}
		return penalty.Penalty{}, fmt.Errorf("failed to get penalty: %w", err)
	}

	return p, nil
}

// MarkRemoved implements penalty.PenaltyRepository. The status guard in
// the WHERE clause makes the active -> removed transition happen at
// most once even under concurrent removals.
func (r *penaltyRepository) MarkRemoved(ctx context.Context, id string, businessUnitID string, removedBy string, removedAt time.Time, reason string) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE penalties SET
			status = 'removed',
			removed_by = $1,
			removed_at = $2,
			removal_reason = $3,
			updated_at = NOW()
		WHERE id = $4
		  AND business_unit_id = $5
		  AND status = 'active'
		RETURNING ` + penaltyColumns

	p, err := scanPenalty(q.QueryRow(ctx, query, removedBy, removedAt, reason, id, businessUnitID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return penalty.Penalty{}, fmt.Errorf("failed to remove penalty: %w", err)
	}

	// Distinguish a missing penalty from one already removed.
	if _, err := r.GetByID(ctx, id, businessUnitID); err != nil {
		return penalty.Penalty{}, err
	}
	return penalty.Penalty{}, penalty.ErrPenaltyAlreadyRemoved
}

func (r *penaltyRepository) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]penalty.Penalty, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query penalties: %w", err)
	}
	defer rows.Close()

	var penalties []penalty.Penalty
	for rows.Next() {
		p, err := scanPenalty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		penalties = append(penalties, p)
	}

	return penalties, rows.Err()
}

// ListActiveForDay implements penalty.PenaltyRepository.
func (r *penaltyRepository) ListActiveForDay(ctx context.Context, employeeID string, date time.Time, businessUnitID string) ([]penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + penaltyColumns + `
		FROM penalties
		WHERE employee_id = $1
		  AND date = $2
		  AND business_unit_id = $3
		  AND status = 'active'
		ORDER BY applied_at
	`

	return r.list(ctx, q, query, employeeID, date, businessUnitID)
}

// ListActiveForRange implements penalty.PenaltyRepository.
func (r *penaltyRepository) ListActiveForRange(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + penaltyColumns + `
		FROM penalties
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND business_unit_id = $4
		  AND status = 'active'
		ORDER BY date, applied_at
	`

	return r.list(ctx, q, query, employeeID, from, to, businessUnitID)
}

// ListForRange implements penalty.PenaltyRepository.
func (r *penaltyRepository) ListForRange(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + penaltyColumns + `
		FROM penalties
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND business_unit_id = $4
		ORDER BY date, applied_at
	`

	return r.list(ctx, q, query, employeeID, from, to, businessUnitID)
}

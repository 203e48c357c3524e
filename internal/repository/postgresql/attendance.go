package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, business_unit_id, employee_id, employee_name, date,
	check_in_time, check_out_time, photo_url,
	check_in_lat, check_in_lng, check_out_lat, check_out_lng,
	break_minutes, work_minutes, status, leave_type, leave_reason,
	created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.BusinessUnitID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime, &rec.PhotoURL,
		&rec.CheckInLat, &rec.CheckInLng, &rec.CheckOutLat, &rec.CheckOutLng,
		&rec.BreakMinutes, &rec.WorkMinutes, &rec.Status, &rec.LeaveType, &rec.LeaveReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (a *attendanceRepository) loadBreaks(ctx context.Context, q database.Querier, recordID string) ([]attendance.Break, error) {
	query := `
		SELECT id, record_id, start_time, end_time, duration_minutes, created_at
		FROM attendance_breaks
		WHERE record_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var b attendance.Break
		if err := rows.Scan(&b.ID, &b.RecordID, &b.StartTime, &b.EndTime, &b.DurationMinutes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, b)
	}

	return breaks, rows.Err()
}

func (a *attendanceRepository) insertBreaks(ctx context.Context, q database.Querier, rec attendance.Record) error {
	for _, b := range rec.Breaks {
		_, err := q.Exec(ctx, `
			INSERT INTO attendance_breaks (id, record_id, start_time, end_time, duration_minutes)
			VALUES ($1, $2, $3, $4, $5)
		`, b.ID, rec.ID, b.StartTime, b.EndTime, b.DurationMinutes)
		if err != nil {
			return fmt.Errorf("failed to insert break: %w", err)
		}
	}
	return nil
}

// Create implements attendance.Repository. The record and its breaks
// are written in one transaction.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	query := `
		INSERT INTO attendance_records (
			id, business_unit_id, employee_id, employee_name, date,
			check_in_time, check_out_time, photo_url,
			check_in_lat, check_in_lng, check_out_lat, check_out_lng,
			break_minutes, work_minutes, status, leave_type, leave_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at, updated_at
	`

	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			rec.ID,
			rec.BusinessUnitID,
			rec.EmployeeID,
			rec.EmployeeName,
			rec.Date,
			rec.CheckInTime,
			rec.CheckOutTime,
			rec.PhotoURL,
			rec.CheckInLat,
			rec.CheckInLng,
			rec.CheckOutLat,
			rec.CheckOutLng,
			rec.BreakMinutes,
			rec.WorkMinutes,
			rec.Status,
			rec.LeaveType,
			rec.LeaveReason,
		).Scan(&rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}

		return a.insertBreaks(ctx, tx, rec)
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, businessUnitID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1
		  AND business_unit_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, businessUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	rec.Breaks, err = a.loadBreaks(ctx, q, rec.ID)
	if err != nil {
		return attendance.Record{}, err
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		  AND business_unit_id = $3
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, businessUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	rec.Breaks, err = a.loadBreaks(ctx, q, rec.ID)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Update implements attendance.Repository. Breaks are rewritten along
// with the record so the stored break list always matches the snapshot.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	query := `
		UPDATE attendance_records SET
			check_in_time = $1,
			check_out_time = $2,
			photo_url = $3,
			check_in_lat = $4,
			check_in_lng = $5,
			check_out_lat = $6,
			check_out_lng = $7,
			break_minutes = $8,
			work_minutes = $9,
			status = $10,
			leave_type = $11,
			leave_reason = $12,
			updated_at = NOW()
		WHERE id = $13
		  AND business_unit_id = $14
	`

	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			rec.CheckInTime,
			rec.CheckOutTime,
			rec.PhotoURL,
			rec.CheckInLat,
			rec.CheckInLng,
			rec.CheckOutLat,
			rec.CheckOutLng,
			rec.BreakMinutes,
			rec.WorkMinutes,
			rec.Status,
			rec.LeaveType,
			rec.LeaveReason,
			rec.ID,
			rec.BusinessUnitID,
		)
		if err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return attendance.ErrRecordNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM attendance_breaks WHERE record_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("failed to clear breaks: %w", err)
		}

		return a.insertBreaks(ctx, tx, rec)
	})
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string, businessUnitID string) error {
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM attendance_breaks WHERE record_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete breaks: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM attendance_records
			WHERE id = $1
			  AND business_unit_id = $2
		`, id, businessUnitID)
		if err != nil {
			return fmt.Errorf("failed to delete attendance record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return attendance.ErrRecordNotFound
		}

		return nil
	})
}

func (a *attendanceRepository) listRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Breaks, err = a.loadBreaks(ctx, q, records[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return records, nil
}

// ListByEmployee implements attendance.Repository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, businessUnitID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND business_unit_id = $4
		ORDER BY date
	`

	return a.listRecords(ctx, q, query, employeeID, from, to, businessUnitID)
}

// ListByDate implements attendance.Repository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, businessUnitID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1
		  AND business_unit_id = $2
		ORDER BY employee_name
	`

	return a.listRecords(ctx, q, query, date, businessUnitID)
}

// CountLeaveDaysInMonth implements attendance.Repository.
func (a *attendanceRepository) CountLeaveDaysInMonth(ctx context.Context, employeeID string, date time.Time, businessUnitID string) (int, error) {
	q := GetQuerier(ctx, a.db)

	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE employee_id = $1
		  AND business_unit_id = $2
		  AND status = 'on_leave'
		  AND date >= $3
		  AND date < $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, businessUnitID, monthStart, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave days: %w", err)
	}

	return count, nil
}

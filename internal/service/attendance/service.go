package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/showroom-hq/backoffice-go/internal/domain/attendance"
	"github.com/showroom-hq/backoffice-go/internal/domain/checklist"
	"github.com/showroom-hq/backoffice-go/internal/domain/penalty"
	"github.com/showroom-hq/backoffice-go/internal/pkg/keymutex"
	"github.com/showroom-hq/backoffice-go/internal/pkg/validator"
)

// ServiceImpl is the attendance state machine. Every mutation locks the
// (business unit, employee, date) key for its read-compute-write
// sequence; records for other employees or days proceed in parallel.
type ServiceImpl struct {
	attendanceRepo attendance.Repository
	applier        penalty.Applier
	lifecycle      penalty.LifecycleService
	notifier       checklist.Notifier
	locks          *keymutex.KeyMutex
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	applier penalty.Applier,
	lifecycle penalty.LifecycleService,
	notifier checklist.Notifier,
) attendance.Service {
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		applier:        applier,
		lifecycle:      lifecycle,
		notifier:       notifier,
		locks:          keymutex.New(),
	}
}

// Helper to get business_unit_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (businessUnitID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	businessUnitID, ok := claims["business_unit_id"].(string)
	if !ok || businessUnitID == "" {
		return "", "", fmt.Errorf("business_unit_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return businessUnitID, userID, nil
}

func dayKey(businessUnitID, employeeID string, date time.Time) string {
	return businessUnitID + "|" + employeeID + "|" + date.Format("2006-01-02")
}

// onDay anchors a wall-clock time onto the record's calendar day. All
// arithmetic is same-day: cross-midnight shifts are not supported.
func onDay(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	clock, _ := validator.IsValidTimeOfDay(req.Time)
	checkInTime := onDay(date, clock)

	key := dayKey(businessUnitID, req.EmployeeID, date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up attendance record: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrRecordExists
	}

	record := attendance.Record{
		ID:             uuid.NewString(),
		BusinessUnitID: businessUnitID,
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		Date:           date,
		CheckInTime:    &checkInTime,
		PhotoURL:       req.PhotoURL,
		CheckInLat:     req.Latitude,
		CheckInLng:     req.Longitude,
		Status:         attendance.StatusCheckedIn,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	// Advisory only; check-in already succeeded.
	if err := s.notifier.OnCheckIn(ctx, req.EmployeeID, date); err != nil {
		slog.Warn("checklist check-in notification failed", "employee_id", req.EmployeeID, "error", err)
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.Service.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.lockAndGet(ctx, req.RecordID, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer s.locks.Unlock(dayKey(businessUnitID, record.EmployeeID, record.Date))

	switch record.Status {
	case attendance.StatusOnLeave:
		return attendance.RecordResponse{}, attendance.ErrOnLeave
	case attendance.StatusCheckedOut:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	case attendance.StatusOnBreak:
		return attendance.RecordResponse{}, attendance.ErrBreakInProgress
	}

	clock, _ := validator.IsValidTimeOfDay(req.Time)
	checkOutTime := onDay(record.Date, clock)
	if record.CheckInTime != nil && checkOutTime.Before(*record.CheckInTime) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	record.CheckOutTime = &checkOutTime
	record.CheckOutLat = req.Latitude
	record.CheckOutLng = req.Longitude
	record.BreakMinutes = record.TotalBreakMinutes()
	record.WorkMinutes = record.WorkedMinutes()
	record.Status = attendance.StatusCheckedOut

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	// Penalty application is advisory: a rule-engine failure must not
	// undo the checkout.
	if _, err := s.applier.ApplyForCheckout(ctx, record); err != nil {
		slog.Error("automatic penalty application failed on checkout", "record_id", record.ID, "error", err)
	}

	return attendance.ToResponse(record), nil
}

// StartBreak implements attendance.Service.
func (s *ServiceImpl) StartBreak(ctx context.Context, req attendance.BreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.lockAndGet(ctx, req.RecordID, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer s.locks.Unlock(dayKey(businessUnitID, record.EmployeeID, record.Date))

	switch record.Status {
	case attendance.StatusOnLeave:
		return attendance.RecordResponse{}, attendance.ErrOnLeave
	case attendance.StatusCheckedOut:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if record.OpenBreak() != nil {
		return attendance.RecordResponse{}, attendance.ErrBreakInProgress
	}

	clock, _ := validator.IsValidTimeOfDay(req.Time)
	startTime := onDay(record.Date, clock)
	if record.CheckInTime != nil && startTime.Before(*record.CheckInTime) {
		return attendance.RecordResponse{}, attendance.ErrTimeBeforeCheckIn
	}

	record.Breaks = append(record.Breaks, attendance.Break{
		ID:        uuid.NewString(),
		RecordID:  record.ID,
		StartTime: startTime,
	})
	record.Status = attendance.StatusOnBreak

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// EndBreak implements attendance.Service.
func (s *ServiceImpl) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.lockAndGet(ctx, req.RecordID, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer s.locks.Unlock(dayKey(businessUnitID, record.EmployeeID, record.Date))

	open := record.OpenBreak()
	if open == nil {
		return attendance.RecordResponse{}, attendance.ErrNoActiveBreak
	}

	clock, _ := validator.IsValidTimeOfDay(req.Time)
	endTime := onDay(record.Date, clock)
	if endTime.Before(open.StartTime) {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "time",
			Message: "break end must not be before break start",
		}}
	}

	open.EndTime = &endTime
	open.DurationMinutes = int(endTime.Sub(open.StartTime).Minutes())
	record.BreakMinutes = record.TotalBreakMinutes()
	record.Status = attendance.StatusCheckedIn

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// MarkLeave implements attendance.Service.
func (s *ServiceImpl) MarkLeave(ctx context.Context, req attendance.MarkLeaveRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	key := dayKey(businessUnitID, req.EmployeeID, date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up attendance record: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrRecordExists
	}

	record := attendance.Record{
		ID:             uuid.NewString(),
		BusinessUnitID: businessUnitID,
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		Date:           date,
		Status:         attendance.StatusOnLeave,
		LeaveType:      &req.LeaveType,
		LeaveReason:    &req.LeaveReason,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	if _, err := s.applier.ApplyForLeave(ctx, created); err != nil {
		slog.Error("leave penalty application failed", "record_id", created.ID, "error", err)
	}

	if err := s.notifier.OnLeaveMarked(ctx, req.EmployeeID, date); err != nil {
		slog.Warn("checklist leave notification failed", "employee_id", req.EmployeeID, "error", err)
	}

	return attendance.ToResponse(created), nil
}

// CancelLeave implements attendance.Service. Leave penalties for the
// day are soft-removed before the record is hard-deleted, so a failed
// removal leaves the leave record intact instead of stranding an
// unmatched penalty.
func (s *ServiceImpl) CancelLeave(ctx context.Context, recordID string) error {
	if validator.IsEmpty(recordID) {
		return validator.ValidationErrors{{Field: "record_id", Message: "record_id is required"}}
	}

	businessUnitID, actor, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.lockAndGet(ctx, recordID, businessUnitID)
	if err != nil {
		return err
	}
	defer s.locks.Unlock(dayKey(businessUnitID, record.EmployeeID, record.Date))

	if record.Status != attendance.StatusOnLeave {
		return attendance.ErrNotOnLeave
	}

	if err := s.notifier.OnLeaveCancelled(ctx, record.EmployeeID, record.Date); err != nil {
		slog.Warn("checklist leave-cancel notification failed", "employee_id", record.EmployeeID, "error", err)
	}

	if actor == "" {
		actor = "system"
	}
	if _, err := s.lifecycle.RemoveLeaveForDay(ctx, record.EmployeeID, record.Date, actor, "leave cancelled"); err != nil {
		return fmt.Errorf("failed to remove leave penalties: %w", err)
	}

	if err := s.attendanceRepo.Delete(ctx, record.ID, businessUnitID); err != nil {
		return fmt.Errorf("failed to delete leave record: %w", err)
	}

	return nil
}

// Get implements attendance.Service.
func (s *ServiceImpl) Get(ctx context.Context, recordID string) (attendance.RecordResponse, error) {
	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, recordID, businessUnitID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(record), nil
}

// List implements attendance.Service.
func (s *ServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, filter.EmployeeID, filter.From, filter.To, businessUnitID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListRecordsResponse{Records: responses}, nil
}

// ListForDate implements attendance.Service.
func (s *ServiceImpl) ListForDate(ctx context.Context, date time.Time) (attendance.ListRecordsResponse, error) {
	businessUnitID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date, businessUnitID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListRecordsResponse{Records: responses}, nil
}

// lockAndGet resolves the record's day key, acquires it, and rereads
// the record under the lock. The pre-read is only used to learn the
// key; the locked read is authoritative.
func (s *ServiceImpl) lockAndGet(ctx context.Context, recordID, businessUnitID string) (attendance.Record, error) {
	peek, err := s.attendanceRepo.GetByID(ctx, recordID, businessUnitID)
	if err != nil {
		return attendance.Record{}, err
	}

	key := dayKey(businessUnitID, peek.EmployeeID, peek.Date)
	s.locks.Lock(key)

	record, err := s.attendanceRepo.GetByID(ctx, recordID, businessUnitID)
	if err != nil {
		s.locks.Unlock(key)
		return attendance.Record{}, err
	}

	return record, nil
}

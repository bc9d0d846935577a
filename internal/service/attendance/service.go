package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	assignmentRepo schedule.ShiftAssignmentRepository
	orgRepo        user.OrganizationRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	assignmentRepo schedule.ShiftAssignmentRepository,
	orgRepo user.OrganizationRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		assignmentRepo: assignmentRepo,
		orgRepo:        orgRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type callerClaims struct {
	UserID     string
	OrgID      string
	EmployeeID string
	Role       user.Role
}

func claimsFromContext(ctx context.Context) (callerClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return callerClaims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return callerClaims{}, fmt.Errorf("org_id claim is missing or invalid")
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)

	return callerClaims{
		UserID:     userID,
		OrgID:      orgID,
		EmployeeID: employeeID,
		Role:       user.Role(roleStr),
	}, nil
}

// localDay truncates now to the organization's local calendar date. Falls
// back to UTC when the stored timezone does not resolve.
func (s *AttendanceServiceImpl) localDay(ctx context.Context, orgID string, now time.Time) time.Time {
	loc := time.UTC
	if org, err := s.orgRepo.GetByID(ctx, orgID); err == nil {
		if parsed, err := time.LoadLocation(org.Timezone); err == nil {
			loc = parsed
		}
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if caller.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	now := s.now()
	today := s.localDay(ctx, caller.OrgID, now)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, caller.EmployeeID, today, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil && existing.ClockIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	// Link the scheduled shift when one exists; clocking in unscheduled is
	// allowed and the record simply carries no assignment.
	var assignmentID *string
	assignment, err := s.assignmentRepo.GetByEmployeeAndDate(ctx, caller.EmployeeID, today, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up shift assignment: %w", err)
	}
	if assignment != nil {
		assignmentID = &assignment.ID
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		OrganizationID:    caller.OrgID,
		EmployeeID:        caller.EmployeeID,
		Date:              today,
		ShiftAssignmentID: assignmentID,
		ClockIn:           &now,
		Status:            attendance.StatusPending,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return s.toResponse(ctx, created)
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if caller.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, caller.EmployeeID, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()

	// A break left running ends at clock-out.
	openBreak, err := s.breakRepo.GetOpen(ctx, open.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open break: %w", err)
	}
	if openBreak != nil {
		if _, err := s.breakRepo.End(ctx, open.ID, now); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to end open break: %w", err)
		}
	}

	open.ClockOut = &now
	if err := s.attendanceRepo.Update(ctx, open); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.Get(ctx, open.ID)
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if caller.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, caller.EmployeeID, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	openBreak, err := s.breakRepo.GetOpen(ctx, open.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open break: %w", err)
	}
	if openBreak != nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakAlreadyOpen
	}

	if _, err := s.breakRepo.Start(ctx, open.ID, s.now()); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to start break: %w", err)
	}

	return s.Get(ctx, open.ID)
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if caller.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, caller.EmployeeID, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	openBreak, err := s.breakRepo.GetOpen(ctx, open.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open break: %w", err)
	}
	if openBreak == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenBreak
	}

	if _, err := s.breakRepo.End(ctx, open.ID, s.now()); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	return s.Get(ctx, open.ID)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.list(ctx, filter, caller.OrgID)
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if caller.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	filter.EmployeeID = &caller.EmployeeID
	filter.EmployeeName = nil
	filter.Department = nil

	return s.list(ctx, filter, caller.OrgID)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter, orgID string) (attendance.ListAttendanceResponse, error) {
	attendances, total, err := s.attendanceRepo.List(ctx, filter, orgID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		resp, err := s.toResponse(ctx, att)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		responses = append(responses, resp)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, id, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Employees may only read their own records.
	if !caller.Role.IsManagement() && att.EmployeeID != caller.EmployeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorizedRecord
	}

	return s.toResponse(ctx, att)
}

// Update implements attendance.AttendanceService. Managers fix wrong records,
// e.g. an employee who forgot to clock out.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ClockInTime != nil {
		if t := parseClockTime(*req.ClockInTime, att.Date); t != nil {
			att.ClockIn = t
		}
	}
	if req.ClockOutTime != nil {
		if t := parseClockTime(*req.ClockOutTime, att.Date); t != nil {
			att.ClockOut = t
		}
	}
	if req.Status != nil {
		att.Status = *req.Status
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.Get(ctx, att.ID)
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.review(ctx, id, attendance.StatusApproved, nil)
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.RejectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.review(ctx, req.ID, attendance.StatusRejected, &req.Reason)
}

func (s *AttendanceServiceImpl) review(ctx context.Context, id string, status string, reason *string) (attendance.AttendanceResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, id, caller.OrgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.Status != attendance.StatusPending {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.now()
	att.Status = status
	att.ApprovedBy = &caller.UserID
	att.ApprovedAt = &now
	att.RejectionReason = reason

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.Get(ctx, att.ID)
}

func (s *AttendanceServiceImpl) toResponse(ctx context.Context, att attendance.Attendance) (attendance.AttendanceResponse, error) {
	breaks, err := s.breakRepo.ListByAttendance(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load breaks: %w", err)
	}

	breakResponses := make([]attendance.BreakResponse, 0, len(breaks))
	for _, brk := range breaks {
		resp := attendance.BreakResponse{
			ID:        brk.ID,
			StartedAt: brk.StartedAt.Format(time.RFC3339),
		}
		if brk.EndedAt != nil {
			ended := brk.EndedAt.Format(time.RFC3339)
			resp.EndedAt = &ended
		}
		breakResponses = append(breakResponses, resp)
	}

	resp := attendance.AttendanceResponse{
		ID:                 att.ID,
		EmployeeID:         att.EmployeeID,
		EmployeeDepartment: att.EmployeeDepartment,
		Date:               att.Date.Format("2006-01-02"),
		Breaks:             breakResponses,
		Status:             att.Status,
		RejectionReason:    att.RejectionReason,
		CreatedAt:          att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          att.UpdatedAt.Format(time.RFC3339),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if att.ClockIn != nil {
		clockIn := att.ClockIn.Format(time.RFC3339)
		resp.ClockInTime = &clockIn
	}
	if att.ClockOut != nil {
		clockOut := att.ClockOut.Format(time.RFC3339)
		resp.ClockOutTime = &clockOut
	}

	return resp, nil
}

// parseClockTime accepts a full datetime or a bare wall-clock time which
// combines with the record's date.
func parseClockTime(s string, date time.Time) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			combined := time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			return &combined
		}
	}
	return nil
}

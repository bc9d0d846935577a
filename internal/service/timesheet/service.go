package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// TimesheetServiceImpl fetches raw attendance batches and runs them through
// the engine. It holds no state between requests; every read recomputes the
// full pipeline (records are small, per-request batches).
type TimesheetServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	engine         *Engine
	now            func() time.Time
}

func NewTimesheetService(attendanceRepo attendance.AttendanceRepository, engine *Engine) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		attendanceRepo: attendanceRepo,
		engine:         engine,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func claimsFromContext(ctx context.Context) (orgID string, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", "", fmt.Errorf("org_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)
	return orgID, employeeID, nil
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	orgID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	raws, err := s.attendanceRepo.ListRawForTimesheet(ctx, attendance.TimesheetWindow{
		EmployeeID: filter.EmployeeID,
		Department: filter.Department,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}, orgID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to load timesheet rows: %w", err)
	}

	processed := s.engine.Process(raws, s.now())
	return timesheet.TimesheetResponse{
		Results: processed.Results,
		Summary: processed.Summary,
		Skipped: processed.Skipped,
	}, nil
}

// GetMyTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyTimesheet(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	orgID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if employeeID == "" {
		return timesheet.TimesheetResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	// The caller's own records only, whatever the filter says.
	filter.EmployeeID = &employeeID
	filter.Department = nil

	raws, err := s.attendanceRepo.ListRawForTimesheet(ctx, attendance.TimesheetWindow{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}, orgID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to load timesheet rows: %w", err)
	}

	processed := s.engine.Process(raws, s.now())
	return timesheet.TimesheetResponse{
		Results: processed.Results,
		Summary: processed.Summary,
		Skipped: processed.Skipped,
	}, nil
}

// GetSummary implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetSummary(ctx context.Context, filter timesheet.SummaryFilter) (timesheet.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.SummaryResponse{}, err
	}

	orgID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timesheet.SummaryResponse{}, err
	}

	raws, err := s.attendanceRepo.ListRawForTimesheet(ctx, attendance.TimesheetWindow{
		EmployeeID: filter.EmployeeID,
		Department: filter.Department,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}, orgID)
	if err != nil {
		return timesheet.SummaryResponse{}, fmt.Errorf("failed to load timesheet rows: %w", err)
	}

	now := s.now()
	records := make([]timesheet.AttendanceRecord, 0, len(raws))
	var skipped []timesheet.SkippedRecord
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			skipped = append(skipped, timesheet.SkippedRecord{Index: i, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}

	resp := timesheet.SummaryResponse{Skipped: skipped}
	switch filter.GroupBy {
	case "employee":
		resp.Groups = s.engine.ByEmployee(records, now)
	case "department":
		resp.Groups = s.engine.ByDepartment(records, now)
	default:
		summary := s.engine.Summarize(records, now)
		resp.Summary = &summary
	}

	return resp, nil
}

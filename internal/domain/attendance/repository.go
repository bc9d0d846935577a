package attendance

import (
	"context"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// AttendanceRepository defines data access for attendance sessions. All
// methods carry orgID to enforce tenant isolation at the query level.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string, orgID string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*Attendance, error)
	GetOpenSession(ctx context.Context, employeeID string, orgID string) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	List(ctx context.Context, filter AttendanceFilter, orgID string) ([]Attendance, int64, error)

	// ListRawForTimesheet returns the raw rows the timesheet engine consumes:
	// attendance joined with employee, schedule window and break intervals.
	ListRawForTimesheet(ctx context.Context, filter TimesheetWindow, orgID string) ([]timesheet.RawRecord, error)

	// GetStaleOpenSessions returns open sessions older than maxAgeHours,
	// used by the auto-close cron job.
	GetStaleOpenSessions(ctx context.Context, maxAgeHours int) ([]Attendance, error)
}

// BreakRepository manages break intervals inside an attendance session.
type BreakRepository interface {
	Start(ctx context.Context, attendanceID string, startedAt time.Time) (Break, error)
	End(ctx context.Context, attendanceID string, endedAt time.Time) (Break, error)
	GetOpen(ctx context.Context, attendanceID string) (*Break, error)
	ListByAttendance(ctx context.Context, attendanceID string) ([]Break, error)
	CloseDangling(ctx context.Context, before time.Time) (int64, error)
}

// TimesheetWindow filters the raw batch handed to the timesheet engine.
type TimesheetWindow struct {
	EmployeeID *string
	Department *string
	StartDate  *string // YYYY-MM-DD
	EndDate    *string // YYYY-MM-DD
}

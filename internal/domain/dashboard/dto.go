package dashboard

import "github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"

// DashboardResponse is the combined payload for the admin/manager dashboard.
type DashboardResponse struct {
	Headcount        HeadcountResponse           `json:"headcount"`
	TodayAttendance  timesheet.AttendanceSummary `json:"today_attendance"`
	PendingApprovals int64                       `json:"pending_approvals"`
	PendingLeave     int64                       `json:"pending_leave"`
	Date             string                      `json:"date"` // YYYY-MM-DD
}

type HeadcountResponse struct {
	TotalEmployees  int64 `json:"total_employees"`
	ActiveEmployees int64 `json:"active_employees"`
	NewEmployees    int64 `json:"new_employees"` // hired within 30 days
	OnLeaveToday    int64 `json:"on_leave_today"`
}

// MyDashboardResponse is the employee-facing dashboard payload.
type MyDashboardResponse struct {
	TodayRecord  *timesheet.RecordResult     `json:"today_record,omitempty"`
	WeekSummary  timesheet.AttendanceSummary `json:"week_summary"`
	PendingLeave int64                       `json:"pending_leave"`
	HasOpenBreak bool                        `json:"has_open_break"`
	HasOpenShift bool                        `json:"has_open_shift"`
}

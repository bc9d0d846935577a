package schedule

import "time"

// ShiftTemplate is a reusable work period definition. Start/End are wall
// clock times; the date comes from the assignment.
type ShiftTemplate struct {
	ID                 string
	OrganizationID     string
	Name               string
	Department         *string
	StartTime          time.Time // wall clock, date part ignored
	EndTime            time.Time
	IsOvernight        bool
	GracePeriodMinutes int
	MaxBreakMinutes    *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ShiftAssignment places a template on an employee for a calendar date.
type ShiftAssignment struct {
	ID              string
	OrganizationID  string
	EmployeeID      string
	ShiftTemplateID string
	Date            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// joined for responses
	TemplateName *string
	EmployeeName *string
}

// ScheduledWindow resolves an assignment into absolute start/end timestamps
// for the assignment's date.
func (a ShiftAssignment) ScheduledWindow(tpl ShiftTemplate, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		tpl.StartTime.Hour(), tpl.StartTime.Minute(), 0, 0, loc)
	end := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		tpl.EndTime.Hour(), tpl.EndTime.Minute(), 0, 0, loc)
	if tpl.IsOvernight {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}

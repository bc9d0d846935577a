package timesheet

import (
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/validator"
)

type TimesheetFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryFilter struct {
	TimesheetFilter
	GroupBy string `json:"group_by"` // none, employee, department
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := f.TimesheetFilter.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if f.GroupBy == "" {
		f.GroupBy = "none"
	}
	if !validator.IsInSlice(f.GroupBy, []string{"none", "employee", "department"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_by",
			Message: "group_by must be one of: none, employee, department",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimesheetResponse struct {
	Results []RecordResult    `json:"results"`
	Summary AttendanceSummary `json:"summary"`
	Skipped []SkippedRecord   `json:"skipped,omitempty"`
}

type SummaryResponse struct {
	Summary *AttendanceSummary           `json:"summary,omitempty"`
	Groups  map[string]AttendanceSummary `json:"groups,omitempty"`
	Skipped []SkippedRecord              `json:"skipped,omitempty"`
}

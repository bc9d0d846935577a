package schedule

import (
	"strings"

	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/validator"
)

type CreateShiftTemplateRequest struct {
	Name               string  `json:"name"`
	Department         *string `json:"department,omitempty"`
	StartTime          string  `json:"start_time"` // HH:MM or HH:MM:SS
	EndTime            string  `json:"end_time"`
	IsOvernight        bool    `json:"is_overnight"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	MaxBreakMinutes    *int    `json:"max_break_minutes,omitempty"`
}

func (r *CreateShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if _, ok := validator.IsValidClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}

	if r.MaxBreakMinutes != nil && *r.MaxBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_break_minutes",
			Message: "max_break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignShiftRequest struct {
	EmployeeID      string `json:"employee_id"`
	ShiftTemplateID string `json:"shift_template_id"`
	Date            string `json:"date"` // YYYY-MM-DD
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_template_id",
			Message: "shift_template_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AssignmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftTemplateResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Department         *string `json:"department,omitempty"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	IsOvernight        bool    `json:"is_overnight"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	MaxBreakMinutes    *int    `json:"max_break_minutes,omitempty"`
}

type AssignmentResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	ShiftTemplateID string  `json:"shift_template_id"`
	TemplateName    *string `json:"template_name,omitempty"`
	Date            string  `json:"date"`
}

type ListAssignmentResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// NormalizeClockTime pads HH:MM to HH:MM:SS for storage.
func NormalizeClockTime(s string) string {
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}

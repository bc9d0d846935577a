package employee

import (
	"strings"

	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Position       *string `json:"position,omitempty"`
	EmploymentType string  `json:"employment_type"`
	HiredAt        string  `json:"hired_at"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.EmploymentType != "" {
		validTypes := []string{"permanent", "probation", "contract", "internship", "freelance"}
		if !validator.IsInSlice(r.EmploymentType, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_type",
				Message: "employment_type must be one of: permanent, probation, contract, internship, freelance",
			})
		}
	} else {
		r.EmploymentType = "permanent"
	}

	if r.HiredAt != "" {
		if _, valid := validator.IsValidDate(r.HiredAt); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "hired_at",
				Message: "hired_at must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID             string  `json:"-"`
	FullName       *string `json:"full_name,omitempty"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Status         *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil {
		validStatuses := []string{"active", "resigned", "onboarding"}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, resigned, onboarding",
			})
		}
	}

	if r.EmploymentType != nil {
		validTypes := []string{"permanent", "probation", "contract", "internship", "freelance"}
		if !validator.IsInSlice(*r.EmploymentType, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_type",
				Message: "employment_type must be one of: permanent, probation, contract, internship, freelance",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // full_name, department, hired_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
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

	if f.SortBy != "" {
		validSortFields := []string{"full_name", "department", "hired_at"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: full_name, department, hired_at",
			})
		}
	} else {
		f.SortBy = "full_name"
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Position       *string `json:"position,omitempty"`
	EmploymentType string  `json:"employment_type"`
	Status         string  `json:"status"`
	HiredAt        string  `json:"hired_at"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

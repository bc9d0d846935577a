package timesheet

import "errors"

var (
	ErrMissingEmployeeID = errors.New("record is missing employee_id")
	ErrMissingDate       = errors.New("record is missing date")
)

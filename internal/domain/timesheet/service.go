package timesheet

import "context"

type TimesheetService interface {
	// GetTimesheet returns the processed timesheet for any employee in the
	// caller's organization (management surface).
	GetTimesheet(ctx context.Context, filter TimesheetFilter) (TimesheetResponse, error)

	// GetMyTimesheet restricts the batch to the caller's own records.
	GetMyTimesheet(ctx context.Context, filter TimesheetFilter) (TimesheetResponse, error)

	// GetSummary aggregates the filtered batch, optionally grouped by
	// employee or department.
	GetSummary(ctx context.Context, filter SummaryFilter) (SummaryResponse, error)
}

package leave

import "time"

type LeaveRequest struct {
	ID              string
	OrganizationID  string
	EmployeeID      string
	LeaveType       string
	StartDate       time.Time
	EndDate         time.Time
	Reason          *string
	Status          string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// joined for responses
	EmployeeName *string
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

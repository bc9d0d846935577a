package attendance

import "time"

type Attendance struct {
	ID                string
	OrganizationID    string
	EmployeeID        string
	Date              time.Time
	ShiftAssignmentID *string
	ClockIn           *time.Time
	ClockOut          *time.Time
	Status            string
	ApprovedBy        *string
	ApprovedAt        *time.Time
	RejectionReason   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// joined for responses
	EmployeeName       *string
	EmployeeDepartment *string
	Breaks             []Break
}

// Break is one break interval inside an attendance session. EndedAt nil
// means the break is still running.
type Break struct {
	ID           string
	AttendanceID string
	StartedAt    time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusOnLeave  = "on_leave"
)

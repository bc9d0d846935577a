package attendance

import "errors"

var (
	// Clock-in/out errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")

	// Break errors
	ErrBreakAlreadyOpen = errors.New("a break is already in progress")
	ErrNoOpenBreak      = errors.New("no break in progress")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyProcessed   = errors.New("attendance has already been approved or rejected")
	ErrUnauthorizedRecord = errors.New("unauthorized to access this attendance record")
)

package response

import (
	"errors"
	"net/http"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/auth"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/employee"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/leave"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/user"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInactiveUser):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this organization")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrShiftAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, schedule.ErrAssignmentExists):
		Conflict(w, "Employee already has a shift assigned for that date")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open attendance session")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already running")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No break is currently running")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance record already processed")
	case errors.Is(err, attendance.ErrUnauthorizedRecord):
		Forbidden(w, "Not allowed to access this record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Leave request overlaps an existing request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

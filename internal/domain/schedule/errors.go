package schedule

import "errors"

var (
	ErrShiftTemplateNotFound   = errors.New("shift template not found")
	ErrShiftAssignmentNotFound = errors.New("shift assignment not found")
	ErrAssignmentExists        = errors.New("employee already has a shift assigned for that date")
)

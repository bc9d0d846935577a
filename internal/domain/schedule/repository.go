package schedule

import (
	"context"
	"time"
)

type ShiftTemplateRepository interface {
	Create(ctx context.Context, tpl ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string, orgID string) (ShiftTemplate, error)
	List(ctx context.Context, orgID string) ([]ShiftTemplate, error)
	Update(ctx context.Context, tpl ShiftTemplate) error
	Delete(ctx context.Context, id string, orgID string) error
}

type ShiftAssignmentRepository interface {
	Create(ctx context.Context, assignment ShiftAssignment) (ShiftAssignment, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*ShiftAssignment, error)
	List(ctx context.Context, filter AssignmentFilter, orgID string) ([]ShiftAssignment, int64, error)
	Delete(ctx context.Context, id string, orgID string) error
}

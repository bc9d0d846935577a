package schedule

import "context"

type ScheduleService interface {
	CreateTemplate(ctx context.Context, req CreateShiftTemplateRequest) (ShiftTemplateResponse, error)
	ListTemplates(ctx context.Context) ([]ShiftTemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
	Assign(ctx context.Context, req AssignShiftRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) (ListAssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string) error
}

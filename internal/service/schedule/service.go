package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/employee"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	templateRepo   schedule.ShiftTemplateRepository
	assignmentRepo schedule.ShiftAssignmentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewScheduleService(
	templateRepo schedule.ShiftTemplateRepository,
	assignmentRepo schedule.ShiftAssignmentRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		templateRepo:   templateRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

func orgIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", fmt.Errorf("org_id claim is missing or invalid")
	}

	return orgID, nil
}

// CreateTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateTemplate(ctx context.Context, req schedule.CreateShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	startTime, err := time.Parse("15:04:05", schedule.NormalizeClockTime(req.StartTime))
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to parse start_time: %w", err)
	}
	endTime, err := time.Parse("15:04:05", schedule.NormalizeClockTime(req.EndTime))
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to parse end_time: %w", err)
	}

	// A shift ending at or before its start only makes sense overnight.
	isOvernight := req.IsOvernight
	if !endTime.After(startTime) {
		isOvernight = true
	}

	created, err := s.templateRepo.Create(ctx, schedule.ShiftTemplate{
		OrganizationID:     orgID,
		Name:               req.Name,
		Department:         req.Department,
		StartTime:          startTime,
		EndTime:            endTime,
		IsOvernight:        isOvernight,
		GracePeriodMinutes: req.GracePeriodMinutes,
		MaxBreakMinutes:    req.MaxBreakMinutes,
	})
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return toTemplateResponse(created), nil
}

// ListTemplates implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListTemplates(ctx context.Context) ([]schedule.ShiftTemplateResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]schedule.ShiftTemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		responses = append(responses, toTemplateResponse(tpl))
	}

	return responses, nil
}

// DeleteTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.templateRepo.Delete(ctx, id, orgID)
}

// Assign implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignShiftRequest) (schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	// Both sides must exist in this tenant before linking them.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, orgID); err != nil {
		return schedule.AssignmentResponse{}, err
	}
	tpl, err := s.templateRepo.GetByID(ctx, req.ShiftTemplateID, orgID)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	existing, err := s.assignmentRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, orgID)
	if err != nil {
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if existing != nil {
		return schedule.AssignmentResponse{}, schedule.ErrAssignmentExists
	}

	created, err := s.assignmentRepo.Create(ctx, schedule.ShiftAssignment{
		OrganizationID:  orgID,
		EmployeeID:      req.EmployeeID,
		ShiftTemplateID: req.ShiftTemplateID,
		Date:            date,
	})
	if err != nil {
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	created.TemplateName = &tpl.Name
	return toAssignmentResponse(created), nil
}

// ListAssignments implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListAssignments(ctx context.Context, filter schedule.AssignmentFilter) (schedule.ListAssignmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListAssignmentResponse{}, err
	}

	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return schedule.ListAssignmentResponse{}, err
	}

	assignments, total, err := s.assignmentRepo.List(ctx, filter, orgID)
	if err != nil {
		return schedule.ListAssignmentResponse{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	responses := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, toAssignmentResponse(assignment))
	}

	return schedule.ListAssignmentResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Assignments: responses,
	}, nil
}

// DeleteAssignment implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteAssignment(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.assignmentRepo.Delete(ctx, id, orgID)
}

func toTemplateResponse(tpl schedule.ShiftTemplate) schedule.ShiftTemplateResponse {
	return schedule.ShiftTemplateResponse{
		ID:                 tpl.ID,
		Name:               tpl.Name,
		Department:         tpl.Department,
		StartTime:          tpl.StartTime.Format("15:04:05"),
		EndTime:            tpl.EndTime.Format("15:04:05"),
		IsOvernight:        tpl.IsOvernight,
		GracePeriodMinutes: tpl.GracePeriodMinutes,
		MaxBreakMinutes:    tpl.MaxBreakMinutes,
	}
}

func toAssignmentResponse(assignment schedule.ShiftAssignment) schedule.AssignmentResponse {
	return schedule.AssignmentResponse{
		ID:              assignment.ID,
		EmployeeID:      assignment.EmployeeID,
		EmployeeName:    assignment.EmployeeName,
		ShiftTemplateID: assignment.ShiftTemplateID,
		TemplateName:    assignment.TemplateName,
		Date:            assignment.Date.Format("2006-01-02"),
	}
}

package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRequestRepository
	now       func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo: leaveRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func claimsFromContext(ctx context.Context) (orgID, userID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", "", "", fmt.Errorf("org_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)
	employeeID, _ = claims["employee_id"].(string)
	return orgID, userID, employeeID, nil
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	orgID, _, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if employeeID == "" {
		return leave.LeaveResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlaps, err := s.leaveRepo.HasOverlap(ctx, employeeID, start, end, orgID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlaps {
		return leave.LeaveResponse{}, leave.ErrOverlappingRequest
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		OrganizationID: orgID,
		EmployeeID:     employeeID,
		LeaveType:      req.LeaveType,
		StartDate:      start,
		EndDate:        end,
		Reason:         req.Reason,
		Status:         leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toLeaveResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	orgID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	return s.list(ctx, filter, orgID)
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	orgID, _, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}
	if employeeID == "" {
		return leave.ListLeaveResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	filter.EmployeeID = &employeeID
	return s.list(ctx, filter, orgID)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveFilter, orgID string) (leave.ListLeaveResponse, error) {
	requests, total, err := s.leaveRepo.List(ctx, filter, orgID)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toLeaveResponse(req))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.review(ctx, id, leave.StatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	return s.review(ctx, req.ID, leave.StatusRejected, &req.Reason)
}

func (s *LeaveServiceImpl) review(ctx context.Context, id string, status string, reason *string) (leave.LeaveResponse, error) {
	orgID, userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	req, err := s.leaveRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if req.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyProcessed
	}

	now := s.now()
	req.Status = status
	req.ReviewedBy = &userID
	req.ReviewedAt = &now
	req.RejectionReason = reason

	if err := s.leaveRepo.Update(ctx, req); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return toLeaveResponse(req), nil
}

func toLeaveResponse(req leave.LeaveRequest) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		LeaveType:       req.LeaveType,
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		Reason:          req.Reason,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
	}
}

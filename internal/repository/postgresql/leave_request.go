package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/leave"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			organization_id, employee_id, leave_type, start_date, end_date, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.OrganizationID,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string, orgID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT lr.id, lr.organization_id, lr.employee_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.reason, lr.status,
			   lr.reviewed_by, lr.reviewed_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   e.full_name AS employee_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1 AND lr.organization_id = $2
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&req.ID, &req.OrganizationID, &req.EmployeeID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveFilter, orgID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "lr.organization_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT lr.id, lr.organization_id, lr.employee_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.reason, lr.status,
			   lr.reviewed_by, lr.reviewed_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   e.full_name AS employee_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.OrganizationID, &req.EmployeeID, &req.LeaveType,
			&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
			&req.ReviewedBy, &req.ReviewedAt, &req.RejectionReason,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

// Update implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3,
			rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status, req.ReviewedBy, req.ReviewedAt,
		req.RejectionReason, req.ID, req.OrganizationID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

// HasOverlap implements leave.LeaveRequestRepository. Rejected requests do
// not block a new request over the same dates.
func (l *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, orgID string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND organization_id = $2
			  AND status <> 'rejected'
			  AND start_date <= $3
			  AND end_date >= $4
		)
	`

	var overlaps bool
	err := q.QueryRow(ctx, query, employeeID, orgID, end, start).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return overlaps, nil
}

// CountPending implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) CountPending(ctx context.Context, orgID string) (int64, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE organization_id = $1 AND status = 'pending'
	`

	var count int64
	if err := q.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	return count, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

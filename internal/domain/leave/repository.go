package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, orgID string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter, orgID string) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, req LeaveRequest) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, orgID string) (bool, error)
	CountPending(ctx context.Context, orgID string) (int64, error)
}

package dashboard

import (
	"context"
	"time"
)

// DashboardRepository owns the counting queries that do not belong to any
// single entity repository.
type DashboardRepository interface {
	GetHeadcount(ctx context.Context, orgID string, newSince time.Time, onLeaveDate time.Time) (Headcount, error)
	CountPendingAttendance(ctx context.Context, orgID string) (int64, error)
}

type Headcount struct {
	Total   int64
	Active  int64
	New     int64
	OnLeave int64
}

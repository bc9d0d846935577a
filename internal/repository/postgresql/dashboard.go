package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/dashboard"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// GetHeadcount implements dashboard.DashboardRepository. One round trip for
// all four counters.
func (d *dashboardRepository) GetHeadcount(ctx context.Context, orgID string, newSince time.Time, onLeaveDate time.Time) (dashboard.Headcount, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT COUNT(*) AS total,
			   COUNT(*) FILTER (WHERE status = 'active') AS active,
			   COUNT(*) FILTER (WHERE hired_at >= $2) AS new,
			   (
				   SELECT COUNT(DISTINCT lr.employee_id)
				   FROM leave_requests lr
				   WHERE lr.organization_id = $1
					 AND lr.status = 'approved'
					 AND lr.start_date <= $3
					 AND lr.end_date >= $3
			   ) AS on_leave
		FROM employees
		WHERE organization_id = $1
	`

	var hc dashboard.Headcount
	err := q.QueryRow(ctx, query, orgID, newSince, onLeaveDate).Scan(
		&hc.Total, &hc.Active, &hc.New, &hc.OnLeave,
	)
	if err != nil {
		return dashboard.Headcount{}, fmt.Errorf("failed to get headcount: %w", err)
	}

	return hc, nil
}

// CountPendingAttendance implements dashboard.DashboardRepository.
func (d *dashboardRepository) CountPendingAttendance(ctx context.Context, orgID string) (int64, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE organization_id = $1 AND status = 'pending'
	`

	var count int64
	if err := q.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending attendances: %w", err)
	}

	return count, nil
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

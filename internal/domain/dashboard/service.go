package dashboard

import "context"

type DashboardService interface {
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
	GetMyDashboard(ctx context.Context) (*MyDashboardResponse, error)
}

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/dashboard"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/leave"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	timesheetservice "github.com/shifttracker/shifttracker-backend-go/internal/service/timesheet"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboardRepo  dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	leaveRepo      leave.LeaveRequestRepository
	engine         *timesheetservice.Engine
	now            func() time.Time
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	leaveRepo leave.LeaveRequestRepository,
	engine *timesheetservice.Engine,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo:  dashboardRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		leaveRepo:      leaveRepo,
		engine:         engine,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func claimsFromContext(ctx context.Context) (orgID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", "", fmt.Errorf("org_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)
	return orgID, employeeID, nil
}

// GetDashboard implements dashboard.DashboardService. The four independent
// reads fan out concurrently; the first error cancels the rest.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	orgID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format("2006-01-02")

	var (
		headcount    dashboard.Headcount
		todaySummary timesheet.AttendanceSummary
		pendingAtt   int64
		pendingLeave int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		headcount, err = s.dashboardRepo.GetHeadcount(gCtx, orgID, now.AddDate(0, 0, -30), now)
		return err
	})

	g.Go(func() error {
		raws, err := s.attendanceRepo.ListRawForTimesheet(gCtx, attendance.TimesheetWindow{
			StartDate: &today,
			EndDate:   &today,
		}, orgID)
		if err != nil {
			return err
		}
		todaySummary = s.engine.Process(raws, now).Summary
		return nil
	})

	g.Go(func() error {
		var err error
		pendingAtt, err = s.dashboardRepo.CountPendingAttendance(gCtx, orgID)
		return err
	})

	g.Go(func() error {
		var err error
		pendingLeave, err = s.leaveRepo.CountPending(gCtx, orgID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &dashboard.DashboardResponse{
		Headcount: dashboard.HeadcountResponse{
			TotalEmployees:  headcount.Total,
			ActiveEmployees: headcount.Active,
			NewEmployees:    headcount.New,
			OnLeaveToday:    headcount.OnLeave,
		},
		TodayAttendance:  todaySummary,
		PendingApprovals: pendingAtt,
		PendingLeave:     pendingLeave,
		Date:             today,
	}, nil
}

// GetMyDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetMyDashboard(ctx context.Context) (*dashboard.MyDashboardResponse, error) {
	orgID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	now := s.now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	resp := &dashboard.MyDashboardResponse{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raws, err := s.attendanceRepo.ListRawForTimesheet(gCtx, attendance.TimesheetWindow{
			EmployeeID: &employeeID,
			StartDate:  &weekAgo,
			EndDate:    &today,
		}, orgID)
		if err != nil {
			return err
		}

		processed := s.engine.Process(raws, now)
		resp.WeekSummary = processed.Summary
		for i := range processed.Results {
			if processed.Results[i].Record.Date.Format("2006-01-02") == today {
				resp.TodayRecord = &processed.Results[i]
				break
			}
		}
		return nil
	})

	g.Go(func() error {
		pending := leave.StatusPending
		filter := leave.LeaveFilter{EmployeeID: &employeeID, Status: &pending, Page: 1, Limit: 1}
		_, total, err := s.leaveRepo.List(gCtx, filter, orgID)
		if err != nil {
			return err
		}
		resp.PendingLeave = total
		return nil
	})

	g.Go(func() error {
		open, err := s.attendanceRepo.GetOpenSession(gCtx, employeeID, orgID)
		if err != nil {
			if errors.Is(err, attendance.ErrNotClockedIn) {
				return nil
			}
			return err
		}
		resp.HasOpenShift = true

		openBreak, err := s.breakRepo.GetOpen(gCtx, open.ID)
		if err != nil {
			return err
		}
		resp.HasOpenBreak = openBreak != nil
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return resp, nil
}

package attendance

import "context"

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)
	StartBreak(ctx context.Context) (AttendanceResponse, error)
	EndBreak(ctx context.Context) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, id string) (AttendanceResponse, error)
	Reject(ctx context.Context, req RejectAttendanceRequest) (AttendanceResponse, error)
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// Sessions still open this many hours after clock-in are considered
// abandoned and closed automatically.
const staleSessionHours = 16

// AttendanceJobs closes abandoned attendance sessions so they stop showing
// up as in-progress shifts and get a clock-out a manager can correct.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	rules          timesheet.RuleConfig
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	rules timesheet.RuleConfig,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		rules:          rules,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances clocks out sessions that were never closed. The
// synthetic clock-out is one standard workday after clock-in, and the record
// stays pending so a manager reviews it before approval.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	staleSessions, err := j.attendanceRepo.GetStaleOpenSessions(ctx, staleSessionHours)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	cutoff := time.Now().UTC().Add(-time.Duration(staleSessionHours) * time.Hour)
	if closed, err := j.breakRepo.CloseDangling(ctx, cutoff); err != nil {
		slog.Error("Cron: Failed to close dangling breaks", "error", err)
	} else if closed > 0 {
		slog.Info("Cron: Closed dangling breaks", "count", closed)
	}

	closedCount := 0
	for _, session := range staleSessions {
		clockOut := session.ClockIn.Add(j.rules.StandardWorkday)
		session.ClockOut = &clockOut

		note := fmt.Sprintf("Auto-closed: no clock-out detected within %d hours of clock-in.", staleSessionHours)
		session.RejectionReason = &note

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		closedCount++
	}

	slog.Info("Cron: Auto-closed stale attendances", "count", closedCount)
	return nil
}

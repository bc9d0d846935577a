package timesheet

import (
	"fmt"
	"math"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// Engine runs the timesheet pipeline: normalize, detect, summarize. It is
// stateless apart from its threshold configuration, so a single instance is
// shared by every request.
type Engine struct {
	cfg timesheet.RuleConfig
}

func NewEngine(cfg timesheet.RuleConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Detect applies the rule table in order. no_show suppresses late_arrival;
// every other rule fires independently.
func (e *Engine) Detect(rec timesheet.AttendanceRecord, now time.Time) []timesheet.Discrepancy {
	// Always non-nil so the JSON shape stays stable for the UI layer.
	found := make([]timesheet.Discrepancy, 0, 2)

	if d := e.detectArrival(rec, now); d != nil {
		found = append(found, *d)
	}
	if d := e.detectEarlyDeparture(rec); d != nil {
		found = append(found, *d)
	}
	if d := e.detectMissingBreak(rec, now); d != nil {
		found = append(found, *d)
	}
	if d := e.detectExcessiveBreak(rec, now); d != nil {
		found = append(found, *d)
	}
	if d := e.detectOvertime(rec, now); d != nil {
		found = append(found, *d)
	}

	return found
}

// detectArrival covers late_arrival and no_show. The two are mutually
// exclusive: no clock-in past the no-show cutoff is a no-show, a clock-in
// past the grace period is a late arrival.
func (e *Engine) detectArrival(rec timesheet.AttendanceRecord, now time.Time) *timesheet.Discrepancy {
	if rec.ScheduledStart == nil {
		return nil
	}
	sched := *rec.ScheduledStart

	if rec.ClockIn == nil {
		if now.Sub(sched) > e.cfg.NoShowAfter {
			return &timesheet.Discrepancy{
				Type:     timesheet.DiscrepancyNoShow,
				Severity: timesheet.SeverityHigh,
				Message:  fmt.Sprintf("No clock-in recorded by %s past scheduled start", formatDuration(now.Sub(sched))),
				Details: map[string]any{
					"scheduled_start": sched.Format(time.RFC3339),
					"minutes_elapsed": roundMinutes(now.Sub(sched)),
				},
			}
		}
		return nil
	}

	late := rec.ClockIn.Sub(sched)
	if late <= e.cfg.LateGrace {
		return nil
	}

	severity := timesheet.SeverityMedium
	if late > e.cfg.NoShowAfter {
		severity = timesheet.SeverityHigh
	}

	return &timesheet.Discrepancy{
		Type:     timesheet.DiscrepancyLateArrival,
		Severity: severity,
		Message:  fmt.Sprintf("Clocked in %s after scheduled start", formatDuration(late)),
		Details: map[string]any{
			"scheduled_start": sched.Format(time.RFC3339),
			"actual_start":    rec.ClockIn.Format(time.RFC3339),
			"minutes_late":    roundMinutes(late),
		},
	}
}

func (e *Engine) detectEarlyDeparture(rec timesheet.AttendanceRecord) *timesheet.Discrepancy {
	if rec.ScheduledEnd == nil || rec.ClockOut == nil {
		return nil
	}

	early := rec.ScheduledEnd.Sub(*rec.ClockOut)
	if early <= e.cfg.EarlyLeaveGrace {
		return nil
	}

	return &timesheet.Discrepancy{
		Type:     timesheet.DiscrepancyEarlyDeparture,
		Severity: timesheet.SeverityMedium,
		Message:  fmt.Sprintf("Clocked out %s before scheduled end", formatDuration(early)),
		Details: map[string]any{
			"scheduled_end": rec.ScheduledEnd.Format(time.RFC3339),
			"actual_end":    rec.ClockOut.Format(time.RFC3339),
			"minutes_early": roundMinutes(early),
		},
	}
}

func (e *Engine) detectMissingBreak(rec timesheet.AttendanceRecord, now time.Time) *timesheet.Discrepancy {
	// Break rules only apply once the employee has actually clocked in.
	if rec.ClockIn == nil {
		return nil
	}

	shiftHours := e.shiftHours(rec, now)
	if shiftHours <= e.cfg.BreakRequired.Hours() {
		return nil
	}
	if TotalBreakHours(rec, now) > 0 {
		return nil
	}

	return &timesheet.Discrepancy{
		Type:     timesheet.DiscrepancyMissingBreak,
		Severity: timesheet.SeverityLow,
		Message:  fmt.Sprintf("No break taken on a %.1f hour shift", shiftHours),
		Details: map[string]any{
			"shift_hours":    round2(shiftHours),
			"required_after": e.cfg.BreakRequired.Hours(),
		},
	}
}

func (e *Engine) detectExcessiveBreak(rec timesheet.AttendanceRecord, now time.Time) *timesheet.Discrepancy {
	maxBreak := e.cfg.DefaultMaxBreak.Hours()
	if rec.MaxBreakHours > 0 {
		maxBreak = rec.MaxBreakHours
	}

	breakHours := TotalBreakHours(rec, now)
	if breakHours <= maxBreak {
		return nil
	}

	return &timesheet.Discrepancy{
		Type:     timesheet.DiscrepancyExcessiveBreak,
		Severity: timesheet.SeverityMedium,
		Message:  fmt.Sprintf("Break time %.1fh exceeds the %.1fh allowance", breakHours, maxBreak),
		Details: map[string]any{
			"break_hours":     round2(breakHours),
			"max_break_hours": round2(maxBreak),
		},
	}
}

func (e *Engine) detectOvertime(rec timesheet.AttendanceRecord, now time.Time) *timesheet.Discrepancy {
	// Overtime needs real clock data. The self-reported hours counter feeds
	// summary totals but is not evidence of extra time worked.
	if rec.ClockIn == nil {
		return nil
	}
	actual := ActualHours(rec, now)
	if actual == 0 {
		return nil
	}
	// Worked hours net of breaks; a long lunch is not overtime.
	worked := actual - TotalBreakHours(rec, now)

	scheduled := e.cfg.StandardWorkday.Hours()
	if rec.ScheduledStart != nil && rec.ScheduledEnd != nil {
		scheduled = rec.ScheduledEnd.Sub(*rec.ScheduledStart).Hours()
	}

	over := worked - scheduled
	if over <= 0 {
		return nil
	}

	severity := timesheet.SeverityLow
	if over > e.cfg.OvertimeEscalate.Hours() {
		severity = timesheet.SeverityMedium
	}

	return &timesheet.Discrepancy{
		Type:     timesheet.DiscrepancyOvertime,
		Severity: severity,
		Message:  fmt.Sprintf("Worked %.1fh over the %.1fh scheduled", over, scheduled),
		Details: map[string]any{
			"scheduled_hours": round2(scheduled),
			"worked_hours":    round2(worked),
			"overtime_hours":  round2(over),
		},
	}
}

// shiftHours prefers the scheduled window length; unscheduled shifts fall
// back to the actual worked duration.
func (e *Engine) shiftHours(rec timesheet.AttendanceRecord, now time.Time) float64 {
	if rec.ScheduledStart != nil && rec.ScheduledEnd != nil {
		hours := rec.ScheduledEnd.Sub(*rec.ScheduledStart).Hours()
		if hours > 0 {
			return hours
		}
	}
	return ActualHours(rec, now)
}

func roundMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes()))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatDuration(d time.Duration) string {
	minutes := roundMinutes(d)
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

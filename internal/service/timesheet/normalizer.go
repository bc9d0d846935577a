package timesheet

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// Normalize converts a raw attendance row into a typed AttendanceRecord.
// The only rejection reasons are missing identity fields; everything else
// degrades to "absent" (nil timestamps) or 0 (numerics).
func Normalize(raw timesheet.RawRecord) (timesheet.AttendanceRecord, error) {
	if strings.TrimSpace(raw.EmployeeID) == "" {
		return timesheet.AttendanceRecord{}, timesheet.ErrMissingEmployeeID
	}

	date, ok := parseDate(raw.Date)
	if !ok {
		return timesheet.AttendanceRecord{}, timesheet.ErrMissingDate
	}

	rec := timesheet.AttendanceRecord{
		EmployeeID:       raw.EmployeeID,
		EmployeeName:     raw.EmployeeName,
		Department:       raw.Department,
		Date:             date,
		ClockIn:          parseTimestampPtr(raw.ClockInTime, date),
		ClockOut:         parseTimestampPtr(raw.ClockOutTime, date),
		ScheduledStart:   parseTimestampPtr(raw.ScheduledStart, date),
		ScheduledEnd:     parseTimestampPtr(raw.ScheduledEnd, date),
		Status:           raw.Status,
		BreakMinutesUsed: coerceFloat(raw.BreakTimeUsed),
		MaxBreakHours:    coerceFloat(raw.MaxBreakAllowed) / 60.0,
	}
	if hours := coerceFloat(raw.TotalShiftHours); hours > 0 {
		rec.ReportedShiftHours = hours
	}

	for _, b := range raw.Breaks {
		start := parseTimestamp(b.Start, date)
		if start == nil {
			continue
		}
		rec.Breaks = append(rec.Breaks, timesheet.BreakInterval{
			Start: *start,
			End:   parseTimestampPtr(b.End, date),
		})
	}

	return rec, nil
}

// ActualHours values an open shift at now. Never negative: clock skew between
// app servers and the database must not produce a negative duration. Rows
// with no clock timestamps fall back to the legacy total_shift_hours counter,
// mirroring the break_time_used fallback in TotalBreakHours.
func ActualHours(rec timesheet.AttendanceRecord, now time.Time) float64 {
	if rec.ClockIn == nil {
		if rec.ReportedShiftHours > 0 {
			return rec.ReportedShiftHours
		}
		return 0
	}
	end := now
	if rec.ClockOut != nil {
		end = *rec.ClockOut
	}
	hours := end.Sub(*rec.ClockIn).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// TotalBreakHours sums break intervals; an open break counts until now. Rows
// without intervals fall back to the legacy break_time_used minutes counter.
func TotalBreakHours(rec timesheet.AttendanceRecord, now time.Time) float64 {
	if len(rec.Breaks) == 0 {
		minutes := rec.BreakMinutesUsed
		if minutes < 0 {
			return 0
		}
		return minutes / 60.0
	}

	var total float64
	for _, b := range rec.Breaks {
		end := now
		if b.End != nil {
			end = *b.End
		}
		hours := end.Sub(b.Start).Hours()
		if hours > 0 {
			total += hours
		}
	}
	return total
}

// coerceFloat is the single numeric coercion rule: parse as float, default to
// 0 on failure. Drivers deliver these fields variously as float64, int,
// json.Number, numeric string, or null; all call sites must go through here.
func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts the two layouts the product has historically stored,
// plus bare wall-clock times which combine with the record's date.
func parseTimestamp(s string, date time.Time) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		combined := time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		return &combined
	}
	return nil
}

func parseTimestampPtr(s *string, date time.Time) *time.Time {
	if s == nil {
		return nil
	}
	return parseTimestamp(*s, date)
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return t, err == nil
}

package timesheet

import "time"

// RawRecord carries attendance row fields exactly as the storage layer (or an
// import) delivers them: timestamps as strings, numeric fields possibly as
// strings or null. Numeric fields are typed any on purpose; the normalizer
// owns the single coercion rule for them.
type RawRecord struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	Date         string     `json:"date"` // YYYY-MM-DD
	ClockInTime  *string    `json:"clock_in_time,omitempty"`
	ClockOutTime *string    `json:"clock_out_time,omitempty"`
	Breaks       []RawBreak `json:"breaks,omitempty"`
	Status       string     `json:"status"`

	// Schedule window, absent when the employee clocked in unscheduled.
	ScheduledStart *string `json:"scheduled_start,omitempty"`
	ScheduledEnd   *string `json:"scheduled_end,omitempty"`

	// Loosely typed numerics: number, numeric string or null depending on
	// the driver and on legacy rows.
	BreakTimeUsed   any `json:"break_time_used,omitempty"`   // minutes
	MaxBreakAllowed any `json:"max_break_allowed,omitempty"` // minutes
	TotalShiftHours any `json:"total_shift_hours,omitempty"` // hours
}

type RawBreak struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// AttendanceRecord is the normalized, strongly typed view of one employee's
// day. It is a request-scoped value object; nothing persists it.
type AttendanceRecord struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Department   string          `json:"department,omitempty"`
	Date         time.Time       `json:"date"`
	ClockIn      *time.Time      `json:"clock_in,omitempty"`
	ClockOut     *time.Time      `json:"clock_out,omitempty"`
	Breaks       []BreakInterval `json:"breaks,omitempty"`
	Status       string          `json:"status,omitempty"`

	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`

	// BreakMinutesUsed is the coerced legacy counter, consulted only when no
	// break intervals exist on the row.
	BreakMinutesUsed float64 `json:"break_minutes_used,omitempty"`

	// MaxBreakHours overrides the configured default break cap when > 0.
	MaxBreakHours float64 `json:"max_break_hours,omitempty"`

	// ReportedShiftHours is the coerced legacy total_shift_hours counter,
	// consulted only when the row carries no clock timestamps at all.
	ReportedShiftHours float64 `json:"reported_shift_hours,omitempty"`
}

type BreakInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// SkippedRecord reports a row excluded from aggregation because it is missing
// identity fields. One bad row never aborts the batch.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// RuleConfig holds the detector thresholds. Zero value is unusable; build it
// with DefaultRuleConfig and override per deployment.
type RuleConfig struct {
	LateGrace        time.Duration // clock-in later than this is late
	NoShowAfter      time.Duration // no clock-in by this is a no-show
	EarlyLeaveGrace  time.Duration // clock-out earlier than this is early
	BreakRequired    time.Duration // shifts longer than this need a break
	DefaultMaxBreak  time.Duration // break cap when the shift has none
	StandardWorkday  time.Duration // assumed shift length when unscheduled
	OvertimeEscalate time.Duration // overtime above this becomes medium
}

func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		LateGrace:        5 * time.Minute,
		NoShowAfter:      30 * time.Minute,
		EarlyLeaveGrace:  5 * time.Minute,
		BreakRequired:    6 * time.Hour,
		DefaultMaxBreak:  time.Hour,
		StandardWorkday:  8 * time.Hour,
		OvertimeEscalate: 2 * time.Hour,
	}
}

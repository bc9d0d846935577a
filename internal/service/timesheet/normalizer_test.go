package timesheet

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func mkTime(h, m int) time.Time {
	return time.Date(2024, 3, 11, h, m, 0, 0, time.UTC)
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"float64", 42.5, 42.5},
		{"int", 7, 7},
		{"int64", int64(60), 60},
		{"numeric string", "12.5", 12.5},
		{"padded numeric string", "  30 ", 30},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"json number", json.Number("90"), 90},
		{"bad json number", json.Number("x"), 0},
		{"bool", true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := coerceFloat(c.input)
			if got != c.want {
				t.Errorf("coerceFloat(%v) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func TestNormalize_Basic(t *testing.T) {
	raw := timesheet.RawRecord{
		EmployeeID:      "emp-1",
		EmployeeName:    "Dewi Lestari",
		Department:      "Operations",
		Date:            "2024-03-11",
		ClockInTime:     strPtr("2024-03-11 09:02:00"),
		ClockOutTime:    strPtr("2024-03-11T17:00:00Z"),
		ScheduledStart:  strPtr("09:00:00"),
		ScheduledEnd:    strPtr("17:00:00"),
		BreakTimeUsed:   "45",
		MaxBreakAllowed: 60,
		Status:          "approved",
		Breaks: []timesheet.RawBreak{
			{Start: "2024-03-11 12:00:00", End: strPtr("2024-03-11 12:45:00")},
		},
	}

	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", rec.EmployeeID)
	assert.Equal(t, "Operations", rec.Department)
	require.NotNil(t, rec.ClockIn)
	assert.Equal(t, mkTime(9, 2), *rec.ClockIn)
	require.NotNil(t, rec.ClockOut)
	assert.Equal(t, mkTime(17, 0), *rec.ClockOut)

	// Bare wall-clock schedule times combine with the record date.
	require.NotNil(t, rec.ScheduledStart)
	assert.Equal(t, mkTime(9, 0), *rec.ScheduledStart)
	require.NotNil(t, rec.ScheduledEnd)
	assert.Equal(t, mkTime(17, 0), *rec.ScheduledEnd)

	assert.Equal(t, 45.0, rec.BreakMinutesUsed)
	assert.Equal(t, 1.0, rec.MaxBreakHours)
	require.Len(t, rec.Breaks, 1)
}

func TestNormalize_MissingIdentity(t *testing.T) {
	_, err := Normalize(timesheet.RawRecord{Date: "2024-03-11"})
	assert.True(t, errors.Is(err, timesheet.ErrMissingEmployeeID))

	_, err = Normalize(timesheet.RawRecord{EmployeeID: "emp-1"})
	assert.True(t, errors.Is(err, timesheet.ErrMissingDate))

	_, err = Normalize(timesheet.RawRecord{EmployeeID: "emp-1", Date: "11/03/2024"})
	assert.True(t, errors.Is(err, timesheet.ErrMissingDate))
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := timesheet.RawRecord{
		EmployeeID:    "emp-1",
		Date:          "2024-03-11",
		ClockInTime:   strPtr("2024-03-11 09:00:00"),
		BreakTimeUsed: "40",
	}

	first, err := Normalize(raw)
	require.NoError(t, err)
	second, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalize_ReportedShiftHours(t *testing.T) {
	rec, err := Normalize(timesheet.RawRecord{
		EmployeeID:      "emp-1",
		Date:            "2024-03-11",
		TotalShiftHours: "7.5",
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, rec.ReportedShiftHours, 1e-9)

	// Garbage and negative legacy values normalize to absent.
	rec, err = Normalize(timesheet.RawRecord{
		EmployeeID:      "emp-1",
		Date:            "2024-03-11",
		TotalShiftHours: "-3",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.ReportedShiftHours)
}

func TestNormalize_UnparsableTimestampIsAbsent(t *testing.T) {
	raw := timesheet.RawRecord{
		EmployeeID:  "emp-1",
		Date:        "2024-03-11",
		ClockInTime: strPtr("not-a-time"),
	}

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Nil(t, rec.ClockIn)
}

func TestActualHours(t *testing.T) {
	now := mkTime(18, 0)

	t.Run("closed shift", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{
			ClockIn:  timePtr(mkTime(9, 0)),
			ClockOut: timePtr(mkTime(17, 0)),
		}
		assert.InDelta(t, 8.0, ActualHours(rec, now), 1e-9)
	})

	t.Run("open shift runs until now", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{ClockIn: timePtr(mkTime(9, 0))}
		assert.InDelta(t, 9.0, ActualHours(rec, now), 1e-9)
	})

	t.Run("not started", func(t *testing.T) {
		assert.Equal(t, 0.0, ActualHours(timesheet.AttendanceRecord{}, now))
	})

	t.Run("no timestamps falls back to reported hours", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{ReportedShiftHours: 7.5}
		assert.InDelta(t, 7.5, ActualHours(rec, now), 1e-9)
	})

	t.Run("clock timestamps win over reported hours", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{
			ClockIn:            timePtr(mkTime(9, 0)),
			ClockOut:           timePtr(mkTime(17, 0)),
			ReportedShiftHours: 3,
		}
		assert.InDelta(t, 8.0, ActualHours(rec, now), 1e-9)
	})

	t.Run("negative reported hours clamps to zero", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{ReportedShiftHours: -2}
		assert.Equal(t, 0.0, ActualHours(rec, now))
	})

	t.Run("clock skew clamps to zero", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{
			ClockIn:  timePtr(mkTime(17, 0)),
			ClockOut: timePtr(mkTime(9, 0)),
		}
		assert.Equal(t, 0.0, ActualHours(rec, now))

		open := timesheet.AttendanceRecord{ClockIn: timePtr(mkTime(19, 0))}
		assert.Equal(t, 0.0, ActualHours(open, now))
	})
}

func TestTotalBreakHours(t *testing.T) {
	now := mkTime(18, 0)

	t.Run("sums intervals", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{
			Breaks: []timesheet.BreakInterval{
				{Start: mkTime(12, 0), End: timePtr(mkTime(12, 30))},
				{Start: mkTime(15, 0), End: timePtr(mkTime(15, 15))},
			},
		}
		assert.InDelta(t, 0.75, TotalBreakHours(rec, now), 1e-9)
	})

	t.Run("open interval counts until now", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{
			Breaks: []timesheet.BreakInterval{{Start: mkTime(17, 30)}},
		}
		assert.InDelta(t, 0.5, TotalBreakHours(rec, now), 1e-9)
	})

	t.Run("falls back to legacy minutes counter", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{BreakMinutesUsed: 45}
		assert.InDelta(t, 0.75, TotalBreakHours(rec, now), 1e-9)
	})

	t.Run("never negative", func(t *testing.T) {
		rec := timesheet.AttendanceRecord{BreakMinutesUsed: -30}
		assert.Equal(t, 0.0, TotalBreakHours(rec, now))
	})
}

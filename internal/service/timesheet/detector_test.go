package timesheet

import (
	"testing"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return NewEngine(timesheet.DefaultRuleConfig())
}

func scheduledRecord(clockIn, clockOut *time.Time) timesheet.AttendanceRecord {
	return timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		Date:           mkTime(0, 0),
		ClockIn:        clockIn,
		ClockOut:       clockOut,
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(17, 0)),
	}
}

func typesOf(found []timesheet.Discrepancy) []timesheet.DiscrepancyType {
	types := make([]timesheet.DiscrepancyType, 0, len(found))
	for _, d := range found {
		types = append(types, d.Type)
	}
	return types
}

func TestDetect_LateArrival(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(9, 12)), timePtr(mkTime(17, 12)))
	rec.BreakMinutesUsed = 30

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyLateArrival, found[0].Type)
	assert.Equal(t, timesheet.SeverityMedium, found[0].Severity)
	assert.Equal(t, 12, found[0].Details["minutes_late"])
}

func TestDetect_LateArrivalWithinGrace(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(9, 5)), timePtr(mkTime(17, 0)))
	rec.BreakMinutesUsed = 30

	assert.Empty(t, e.Detect(rec, now))
}

func TestDetect_LateArrivalEscalatesToHigh(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(9, 45)), timePtr(mkTime(17, 0)))
	rec.BreakMinutesUsed = 30

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyLateArrival, found[0].Type)
	assert.Equal(t, timesheet.SeverityHigh, found[0].Severity)
}

func TestDetect_NoShow(t *testing.T) {
	e := testEngine()

	rec := scheduledRecord(nil, nil)
	now := mkTime(9, 35)

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyNoShow, found[0].Type)
	assert.Equal(t, timesheet.SeverityHigh, found[0].Severity)

	// no_show suppresses late_arrival, so it never appears twice for
	// the same absence.
	assert.NotContains(t, typesOf(found), timesheet.DiscrepancyLateArrival)
}

func TestDetect_NoShowNotYet(t *testing.T) {
	e := testEngine()

	rec := scheduledRecord(nil, nil)
	now := mkTime(9, 20)

	assert.Empty(t, e.Detect(rec, now))
}

func TestDetect_EarlyDeparture(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(9, 0)), timePtr(mkTime(16, 30)))
	rec.BreakMinutesUsed = 30

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyEarlyDeparture, found[0].Type)
	assert.Equal(t, timesheet.SeverityMedium, found[0].Severity)
	assert.Equal(t, 30, found[0].Details["minutes_early"])
}

func TestDetect_MissingBreak(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		ClockIn:        timePtr(mkTime(9, 0)),
		ClockOut:       timePtr(mkTime(16, 0)),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(16, 0)),
	}

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyMissingBreak, found[0].Type)
	assert.Equal(t, timesheet.SeverityLow, found[0].Severity)
}

func TestDetect_MissingBreakShortShift(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	// Six hours on the nose does not require a break.
	rec := timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		ClockIn:        timePtr(mkTime(9, 0)),
		ClockOut:       timePtr(mkTime(15, 0)),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(15, 0)),
	}

	assert.Empty(t, e.Detect(rec, now))
}

func TestDetect_ExcessiveBreak(t *testing.T) {
	e := testEngine()
	now := mkTime(19, 0)

	rec := timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		ClockIn:        timePtr(mkTime(9, 0)),
		ClockOut:       timePtr(mkTime(18, 30)),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(18, 30)),
		MaxBreakHours:  1,
		Breaks: []timesheet.BreakInterval{
			{Start: mkTime(12, 0), End: timePtr(mkTime(13, 30))},
		},
	}

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyExcessiveBreak, found[0].Type)
	assert.Equal(t, timesheet.SeverityMedium, found[0].Severity)
	assert.Equal(t, 1.5, found[0].Details["break_hours"])
}

func TestDetect_ExcessiveBreakUsesDefaultCap(t *testing.T) {
	e := testEngine()
	now := mkTime(19, 0)

	// No per-record cap: the one hour default applies.
	rec := timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		ClockIn:        timePtr(mkTime(9, 0)),
		ClockOut:       timePtr(mkTime(18, 15)),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(18, 15)),
		Breaks: []timesheet.BreakInterval{
			{Start: mkTime(12, 0), End: timePtr(mkTime(13, 15))},
		},
	}

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyExcessiveBreak, found[0].Type)
}

func TestDetect_Overtime(t *testing.T) {
	e := testEngine()
	now := mkTime(21, 0)

	cases := []struct {
		name         string
		clockOut     time.Time
		wantSeverity timesheet.Severity
	}{
		{"ninety minutes over is low", mkTime(19, 0), timesheet.SeverityLow},
		{"over two hours escalates", mkTime(19, 45), timesheet.SeverityMedium},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := scheduledRecord(timePtr(mkTime(9, 0)), timePtr(c.clockOut))
			rec.BreakMinutesUsed = 30

			found := e.Detect(rec, now)
			require.Len(t, found, 1)
			assert.Equal(t, timesheet.DiscrepancyOvertime, found[0].Type)
			assert.Equal(t, c.wantSeverity, found[0].Severity)
		})
	}
}

func TestDetect_OvertimeUnscheduledUsesStandardDay(t *testing.T) {
	e := testEngine()
	now := mkTime(21, 0)

	rec := timesheet.AttendanceRecord{
		EmployeeID:       "emp-1",
		ClockIn:          timePtr(mkTime(8, 0)),
		ClockOut:         timePtr(mkTime(19, 0)),
		BreakMinutesUsed: 30,
	}

	found := e.Detect(rec, now)
	require.Len(t, found, 1)
	assert.Equal(t, timesheet.DiscrepancyOvertime, found[0].Type)
	assert.Equal(t, timesheet.SeverityMedium, found[0].Severity)
	assert.Equal(t, 2.5, found[0].Details["overtime_hours"])
}

func TestDetect_CleanShift(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(8, 58)), timePtr(mkTime(17, 2)))
	rec.Breaks = []timesheet.BreakInterval{
		{Start: mkTime(12, 0), End: timePtr(mkTime(12, 45))},
	}

	found := e.Detect(rec, now)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestDetect_NoScheduleNoClockIn(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	rec := timesheet.AttendanceRecord{EmployeeID: "emp-1", Date: mkTime(0, 0)}
	assert.Empty(t, e.Detect(rec, now))

	// A self-reported hours counter alone never raises overtime; it only
	// feeds summary totals.
	rec.ReportedShiftHours = 11
	assert.Empty(t, e.Detect(rec, now))
}

func TestDetect_MultipleDiscrepanciesInRuleOrder(t *testing.T) {
	e := testEngine()
	now := mkTime(20, 0)

	// Late, no break on an eight hour schedule, and clocked out well past
	// the scheduled end.
	rec := scheduledRecord(timePtr(mkTime(9, 12)), timePtr(mkTime(19, 0)))

	found := e.Detect(rec, now)
	assert.Equal(t, []timesheet.DiscrepancyType{
		timesheet.DiscrepancyLateArrival,
		timesheet.DiscrepancyMissingBreak,
		timesheet.DiscrepancyOvertime,
	}, typesOf(found))
}

func TestDetect_CustomThresholds(t *testing.T) {
	cfg := timesheet.DefaultRuleConfig()
	cfg.LateGrace = 15 * time.Minute
	e := NewEngine(cfg)
	now := mkTime(18, 0)

	rec := scheduledRecord(timePtr(mkTime(9, 12)), timePtr(mkTime(17, 0)))
	rec.BreakMinutesUsed = 30

	assert.Empty(t, e.Detect(rec, now))
}

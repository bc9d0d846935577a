package timesheet

import (
	"testing"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanRecord(employeeID, department, status string) timesheet.AttendanceRecord {
	return timesheet.AttendanceRecord{
		EmployeeID:     employeeID,
		Department:     department,
		Date:           mkTime(0, 0),
		ClockIn:        timePtr(mkTime(9, 0)),
		ClockOut:       timePtr(mkTime(17, 0)),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(17, 0)),
		Status:         status,
		Breaks: []timesheet.BreakInterval{
			{Start: mkTime(12, 0), End: timePtr(mkTime(12, 45))},
		},
	}
}

func lateRecord(employeeID, department, status string) timesheet.AttendanceRecord {
	rec := cleanRecord(employeeID, department, status)
	rec.ClockIn = timePtr(mkTime(9, 20))
	return rec
}

func TestSummarize_Empty(t *testing.T) {
	e := testEngine()

	summary := e.Summarize(nil, mkTime(18, 0))

	assert.Equal(t, 0, summary.TotalRecords)
	assert.Equal(t, 0.0, summary.TotalHours)
	assert.Equal(t, 0.0, summary.TotalBreakHours)
	assert.Equal(t, 0, summary.OnTimePercentage)
}

func TestSummarize_MixedBatch(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	records := []timesheet.AttendanceRecord{
		cleanRecord("emp-1", "Operations", "approved"),
		cleanRecord("emp-2", "Operations", "pending"),
		lateRecord("emp-3", "Sales", "pending"),
	}

	summary := e.Summarize(records, now)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 1, summary.ApprovedCount)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, 0, summary.RejectedCount)

	// One twenty-minute late arrival in the batch.
	assert.Equal(t, 1, summary.MediumSeverity)
	assert.Equal(t, 0, summary.LowSeverity)
	assert.Equal(t, 0, summary.HighSeverity)

	// 2 of 3 on time, rounded to the nearest integer.
	assert.Equal(t, 67, summary.OnTimePercentage)

	assert.InDelta(t, 8.0+8.0+7.667, summary.TotalHours, 0.01)
	assert.InDelta(t, 2.25, summary.TotalBreakHours, 1e-9)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	records := []timesheet.AttendanceRecord{
		cleanRecord("emp-1", "Operations", "approved"),
		lateRecord("emp-2", "Sales", "pending"),
		cleanRecord("emp-3", "Sales", "rejected"),
	}
	reversed := []timesheet.AttendanceRecord{records[2], records[1], records[0]}

	assert.Equal(t, e.Summarize(records, now), e.Summarize(reversed, now))
}

func TestSummarize_NoShowCountsAgainstOnTime(t *testing.T) {
	e := testEngine()
	now := mkTime(12, 0)

	noShow := timesheet.AttendanceRecord{
		EmployeeID:     "emp-1",
		Date:           mkTime(0, 0),
		ScheduledStart: timePtr(mkTime(9, 0)),
		ScheduledEnd:   timePtr(mkTime(17, 0)),
		Status:         "pending",
	}

	summary := e.Summarize([]timesheet.AttendanceRecord{noShow}, now)

	assert.Equal(t, 1, summary.HighSeverity)
	assert.Equal(t, 0, summary.OnTimePercentage)
}

func TestByEmployee(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	records := []timesheet.AttendanceRecord{
		cleanRecord("emp-1", "Operations", "approved"),
		cleanRecord("emp-1", "Operations", "approved"),
		lateRecord("emp-2", "Sales", "pending"),
	}

	groups := e.ByEmployee(records, now)
	require.Len(t, groups, 2)

	assert.Equal(t, 2, groups["emp-1"].TotalRecords)
	assert.Equal(t, 100, groups["emp-1"].OnTimePercentage)

	assert.Equal(t, 1, groups["emp-2"].TotalRecords)
	assert.Equal(t, 0, groups["emp-2"].OnTimePercentage)
}

func TestByDepartment(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	records := []timesheet.AttendanceRecord{
		cleanRecord("emp-1", "Operations", "approved"),
		lateRecord("emp-2", "Sales", "pending"),
		cleanRecord("emp-3", "", "approved"),
	}

	groups := e.ByDepartment(records, now)
	require.Len(t, groups, 3)

	assert.Equal(t, 1, groups["Operations"].TotalRecords)
	assert.Equal(t, 1, groups["Sales"].TotalRecords)
	assert.Equal(t, 1, groups["unassigned"].TotalRecords)
}

func TestProcess_SkipsMalformedRows(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	raws := []timesheet.RawRecord{
		{
			EmployeeID:   "emp-1",
			Date:         "2024-03-11",
			ClockInTime:  strPtr("2024-03-11 09:00:00"),
			ClockOutTime: strPtr("2024-03-11 17:00:00"),
		},
		// One row without an employee id, one without a date.
		{Date: "2024-03-11"},
		{EmployeeID: "emp-2"},
	}

	result := e.Process(raws, now)

	require.Len(t, result.Results, 1)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.Equal(t, 2, result.Skipped[1].Index)

	// Skipped rows never reach the summary.
	assert.Equal(t, 1, result.Summary.TotalRecords)
}

func TestProcess_EndToEnd(t *testing.T) {
	e := testEngine()
	now := mkTime(18, 0)

	raws := []timesheet.RawRecord{
		{
			EmployeeID:     "emp-1",
			EmployeeName:   "Dewi Lestari",
			Department:     "Operations",
			Date:           "2024-03-11",
			ClockInTime:    strPtr("2024-03-11 09:12:00"),
			ClockOutTime:   strPtr("2024-03-11 17:00:00"),
			ScheduledStart: strPtr("09:00:00"),
			ScheduledEnd:   strPtr("17:00:00"),
			BreakTimeUsed:  "30",
			Status:         "pending",
		},
	}

	result := e.Process(raws, now)

	require.Len(t, result.Results, 1)
	discrepancies := result.Results[0].Discrepancies
	require.Len(t, discrepancies, 1)
	assert.Equal(t, timesheet.DiscrepancyLateArrival, discrepancies[0].Type)

	assert.Equal(t, 1, result.Summary.TotalRecords)
	assert.Equal(t, 1, result.Summary.MediumSeverity)
	assert.Equal(t, 0, result.Summary.OnTimePercentage)
}

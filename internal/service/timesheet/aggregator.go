package timesheet

import (
	"math"
	"time"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
)

// Summarize reduces a batch into counters. Pure and order-independent: the
// reduction only adds, so shuffling the input cannot change the output.
func (e *Engine) Summarize(records []timesheet.AttendanceRecord, now time.Time) timesheet.AttendanceSummary {
	summary := timesheet.AttendanceSummary{
		TotalRecords: len(records),
	}

	onTime := 0
	for _, rec := range records {
		summary.TotalHours += ActualHours(rec, now)
		summary.TotalBreakHours += TotalBreakHours(rec, now)

		switch rec.Status {
		case "pending":
			summary.PendingCount++
		case "approved":
			summary.ApprovedCount++
		case "rejected":
			summary.RejectedCount++
		}

		punctual := true
		for _, d := range e.Detect(rec, now) {
			switch d.Severity {
			case timesheet.SeverityLow:
				summary.LowSeverity++
			case timesheet.SeverityMedium:
				summary.MediumSeverity++
			case timesheet.SeverityHigh:
				summary.HighSeverity++
			}
			if d.Type == timesheet.DiscrepancyLateArrival || d.Type == timesheet.DiscrepancyNoShow {
				punctual = false
			}
		}
		if punctual {
			onTime++
		}
	}

	// Empty batches are a normal state, not a divide-by-zero.
	if summary.TotalRecords > 0 {
		summary.OnTimePercentage = int(math.Round(float64(onTime) / float64(summary.TotalRecords) * 100))
	}

	return summary
}

// ByEmployee groups first, then summarizes each group independently.
func (e *Engine) ByEmployee(records []timesheet.AttendanceRecord, now time.Time) map[string]timesheet.AttendanceSummary {
	groups := make(map[string][]timesheet.AttendanceRecord)
	for _, rec := range records {
		groups[rec.EmployeeID] = append(groups[rec.EmployeeID], rec)
	}

	result := make(map[string]timesheet.AttendanceSummary, len(groups))
	for id, group := range groups {
		result[id] = e.Summarize(group, now)
	}
	return result
}

// ByDepartment mirrors ByEmployee keyed on the employee's department
// attribute. Records without a department land under "unassigned".
func (e *Engine) ByDepartment(records []timesheet.AttendanceRecord, now time.Time) map[string]timesheet.AttendanceSummary {
	groups := make(map[string][]timesheet.AttendanceRecord)
	for _, rec := range records {
		dept := rec.Department
		if dept == "" {
			dept = "unassigned"
		}
		groups[dept] = append(groups[dept], rec)
	}

	result := make(map[string]timesheet.AttendanceSummary, len(groups))
	for dept, group := range groups {
		result[dept] = e.Summarize(group, now)
	}
	return result
}

// Process is the convenience entry point: normalize every raw row, detect
// per record, summarize the batch. Malformed rows are reported in Skipped
// and excluded from the summary; they never abort the batch.
func (e *Engine) Process(raws []timesheet.RawRecord, now time.Time) timesheet.ProcessResult {
	result := timesheet.ProcessResult{
		Results: make([]timesheet.RecordResult, 0, len(raws)),
	}

	records := make([]timesheet.AttendanceRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, timesheet.SkippedRecord{
				Index:  i,
				Reason: err.Error(),
			})
			continue
		}
		records = append(records, rec)
		result.Results = append(result.Results, timesheet.RecordResult{
			Record:        rec,
			Discrepancies: e.Detect(rec, now),
		})
	}

	result.Summary = e.Summarize(records, now)
	return result
}

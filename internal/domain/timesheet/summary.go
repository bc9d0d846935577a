package timesheet

// AttendanceSummary reduces a batch of records into dashboard counters.
// Derived entirely from records and their discrepancies; no identity of its
// own.
type AttendanceSummary struct {
	TotalRecords     int     `json:"total_records"`
	TotalHours       float64 `json:"total_hours"`
	TotalBreakHours  float64 `json:"total_break_hours"`
	PendingCount     int     `json:"pending_count"`
	ApprovedCount    int     `json:"approved_count"`
	RejectedCount    int     `json:"rejected_count"`
	LowSeverity      int     `json:"low_severity_count"`
	MediumSeverity   int     `json:"medium_severity_count"`
	HighSeverity     int     `json:"high_severity_count"`
	OnTimePercentage int     `json:"on_time_percentage"`
}

// RecordResult pairs a normalized record with the discrepancies detected on
// it; the stable JSON shape handed to presentation surfaces.
type RecordResult struct {
	Record        AttendanceRecord `json:"record"`
	Discrepancies []Discrepancy    `json:"discrepancies"`
}

// ProcessResult is the convenience output of the full
// normalize -> detect -> summarize pipeline.
type ProcessResult struct {
	Results []RecordResult    `json:"results"`
	Summary AttendanceSummary `json:"summary"`
	Skipped []SkippedRecord   `json:"skipped,omitempty"`
}

package timesheet

type DiscrepancyType string

const (
	DiscrepancyLateArrival    DiscrepancyType = "late_arrival"
	DiscrepancyEarlyDeparture DiscrepancyType = "early_departure"
	DiscrepancyMissingBreak   DiscrepancyType = "missing_break"
	DiscrepancyExcessiveBreak DiscrepancyType = "excessive_break"
	DiscrepancyNoShow         DiscrepancyType = "no_show"
	DiscrepancyOvertime       DiscrepancyType = "overtime"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Discrepancy is a flagged deviation between scheduled and actual attendance.
// Computed fresh on every read, never stored.
type Discrepancy struct {
	Type     DiscrepancyType `json:"type"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Details  map[string]any  `json:"details,omitempty"`
}

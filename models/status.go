package models

// Status is the availability state reported for an ATM.
type Status string

/*
Report status rules:

1. DOWN is the only status that carries a downtime interval.
   - downtime_start / downtime_end are kept only for DOWN reports.
   - downtime_duration_hours is derived when both ends are present.

2. UP and PARKED reports never carry downtime data, whatever the client sends.

3. Only DOWN reports with a start time are evaluated against the SLA threshold.
*/

const (
	StatusUp     Status = "UP"     // ATM is in service.
	StatusDown   Status = "DOWN"   // ATM is out of service; downtime is tracked.
	StatusParked Status = "PARKED" // ATM is intentionally taken out of rotation.
)

// Severity grades how far a downtime has run past the SLA threshold.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// FaultCategories are the dashboard fault keys, in display order.
var FaultCategories = []string{
	"LOST_COMM",
	"CASH_OUT",
	"HARD_FAULT",
	"IN_REPLENISHMENT",
	"APP_OUT_OF_SERVICE",
	"SWITCH_LOST_COMM",
}

package models

import "time"

// Summary is the payload of GET /dashboard/summary.
type Summary struct {
	Date      string         `json:"date"`
	AtmStatus StatusCounts   `json:"atmStatus"`
	Faults    map[string]int `json:"faults"`
	SLA       SLASummary     `json:"sla"`
	Branches  []BranchHeat   `json:"branches"`
}

type StatusCounts struct {
	Up     int `json:"UP"`
	Down   int `json:"DOWN"`
	Parked int `json:"PARKED"`
}

type SLASummary struct {
	ThresholdMinutes int         `json:"thresholdMinutes"`
	Breaches         []SLABreach `json:"breaches"`
}

// SLABreach is a DOWN report whose elapsed downtime exceeded the threshold.
type SLABreach struct {
	ReportID    int64     `json:"reportId"`
	AtmID       string    `json:"atmId"`
	Branch      string    `json:"branch"`
	Issue       *string   `json:"issue"`
	DownMinutes int       `json:"downMinutes"`
	Since       time.Time `json:"since"`
	Severity    Severity  `json:"severity"`
}

// BranchHeat is the per-branch entry used to rank and colour the heat map.
// Faults mirrors Down; it is not a separate metric.
type BranchHeat struct {
	Branch      string `json:"branch"`
	Up          int    `json:"up"`
	Down        int    `json:"down"`
	Parked      int    `json:"parked"`
	Faults      int    `json:"faults"`
	SLABreaches int    `json:"slaBreaches"`
	HeatScore   int    `json:"heatScore"`
	HeatLevel   string `json:"heatLevel"`
}

package analysis

import "time"

// AnalysisID identifier type
type AnalysisID string

// Severity enum for a single detection
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Request is the input payload for a log analysis.
//
// Logs:        raw log text or JSON (CloudTrail, Sysmon, Wazuh, auth logs, etc.)
// Environment: label for where the logs came from (aws, gcp, windows-ad...)
// Concern:     what the analyst is worried about (intrusion, data-exfiltration...)
// Question:    optional focus question ("Is this lateral movement?")
type Request struct {
	Environment string `json:"environment,omitempty"`
	Concern     string `json:"concern,omitempty"`
	Logs        string `json:"logs"`
	Question    string `json:"question,omitempty"`
}

// Detection is a single finding produced by the model
type Detection struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Severity    Severity `json:"severity"`
	Indicators  []string `json:"indicators"` // IPs, usernames, process names, etc.
}

// Result is the structured verdict relayed back to the caller
type Result struct {
	OverallRiskScore   float64     `json:"overall_risk_score"` // 0-100
	Summary            string      `json:"summary"`
	Detections         []Detection `json:"detections"`
	RecommendedActions []string    `json:"recommended_actions"`
	QueriesToRun       []string    `json:"queries_to_run"` // follow-up SIEM queries (SPL, KQL, SQL-like)
}

// Record represents one analysis stored for auditing and retrieval
type Record struct {
	ID          AnalysisID `json:"id"`
	Environment string     `json:"environment,omitempty"`
	Concern     string     `json:"concern,omitempty"`
	Question    string     `json:"question,omitempty"`
	RiskScore   float64    `json:"risk_score"`
	Result      string     `json:"result"` // JSON string of the normalized Result
	LogsURL     string     `json:"logs_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

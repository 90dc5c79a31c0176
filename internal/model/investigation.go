package model

import "time"

// InvestigationStatus is the lifecycle state of an investigation.
type InvestigationStatus string

const (
	StatusRunning   InvestigationStatus = "running"
	StatusCompleted InvestigationStatus = "completed"
	StatusCancelled InvestigationStatus = "cancelled"
	StatusFailed    InvestigationStatus = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s InvestigationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// Investigation is one tracked discovery run.
type Investigation struct {
	ID        string               `json:"id"`
	Strategy  DiscoveryStrategy    `json:"strategy"`
	Status    InvestigationStatus  `json:"status"`
	StartedAt time.Time            `json:"started_at"`
	EndedAt   *time.Time           `json:"ended_at,omitempty"`
	Results   []IntelligenceResult `json:"results"`
	Error     string               `json:"error,omitempty"`
}

// Progress is a point-in-time snapshot of a running or finished investigation.
type Progress struct {
	InvestigationID string              `json:"investigation_id"`
	Target          string              `json:"target"`
	Status          InvestigationStatus `json:"status"`
	StartedAt       time.Time           `json:"started_at"`
	EndedAt         *time.Time          `json:"ended_at,omitempty"`
	Elapsed         time.Duration       `json:"elapsed"`
	ResultCount     int                 `json:"result_count"`
	Methods         []Source            `json:"methods"`
	KeywordCount    int                 `json:"keyword_count"`
}

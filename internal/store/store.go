package store

import (
	"context"
	"time"

	"github.com/osintworks/recon-cli/internal/model"
)

// InvestigationFilter specifies criteria for listing investigations.
// Target matches as a case-insensitive substring.
type InvestigationFilter struct {
	Status model.InvestigationStatus `json:"status,omitempty"`
	Target string                    `json:"target,omitempty"`
	Limit  int                       `json:"limit,omitempty"`
	Offset int                       `json:"offset,omitempty"`
}

// Store defines the persistence interface for the discovery pipeline.
type Store interface {
	// Investigations
	CreateInvestigation(ctx context.Context, inv model.Investigation) error
	FinishInvestigation(ctx context.Context, id string, status model.InvestigationStatus, errMsg string, endedAt time.Time) error
	GetInvestigation(ctx context.Context, id string) (*model.Investigation, error)
	ListInvestigations(ctx context.Context, filter InvestigationFilter) ([]model.Investigation, error)

	// Results
	SaveResults(ctx context.Context, investigationID string, results []model.IntelligenceResult) error
	GetResults(ctx context.Context, investigationID string) ([]model.IntelligenceResult, error)

	// Analyses
	SaveAnalysis(ctx context.Context, analysis model.IntelligenceAnalysis) error
	GetAnalysis(ctx context.Context, investigationID string) (*model.IntelligenceAnalysis, error)

	// Retention
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

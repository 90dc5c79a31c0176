package collect

import (
	"context"

	"github.com/osintworks/recon-cli/internal/model"
)

// Params is the per-source parameter bundle handed to a collector.
type Params struct {
	Keywords        []string
	TargetType      model.TargetType
	GeographicFocus string
	PriorityData    []string
	TimeLimitMins   int
	RiskMitigation  model.RiskMitigation
}

// Collector gathers raw findings from one external source. Implementations
// live outside this module; the orchestrator only needs this contract.
type Collector interface {
	// Collect returns whatever the source found for target. An error means
	// the source failed entirely; partial results with nil error are fine.
	Collect(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error)
}

// Limiter paces outbound calls per source.
type Limiter interface {
	// Wait blocks until the source may issue its next request, or until
	// ctx is done.
	Wait(ctx context.Context, source model.Source) error
}

// ProxyManager hands out proxy addresses for collectors that rotate them.
type ProxyManager interface {
	// GetProxy returns the next proxy URL, or "" when none are configured.
	GetProxy() string
}

// paramsFor builds the parameter bundle for one source from the strategy.
func paramsFor(strategy model.DiscoveryStrategy, source model.Source) Params {
	return Params{
		Keywords:        strategy.SearchKeywords,
		TargetType:      strategy.Target.Type,
		GeographicFocus: strategy.Target.GeographicFocus,
		PriorityData:    strategy.Target.PriorityData,
		TimeLimitMins:   strategy.TimeAllocation[source],
		RiskMitigation:  strategy.RiskMitigation,
	}
}

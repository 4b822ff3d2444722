package optimization

import (
	"fmt"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Placeholder performance constants reported when no optimizer statistics
// are available. Callers must treat results carrying these as low-confidence
// estimates.
const (
	FallbackExpectedReturn = 0.08
	FallbackVolatility     = 0.15
	FallbackSharpeRatio    = 0.4
)

// staticTables holds target weights per risk profile over a fixed asset
// roster, used when no price data or optimizer backend is available.
var staticTables = map[domain.RiskProfile]map[string]float64{
	domain.RiskConservative: {
		"BTC": 0.05, "ETH": 0.05, "SPY": 0.30, "QQQ": 0.15,
		"GLD": 0.15, "TLT": 0.25, "VNQ": 0.05,
	},
	domain.RiskAggressive: {
		"BTC": 0.20, "ETH": 0.15, "SPY": 0.25, "QQQ": 0.25,
		"GLD": 0.05, "TLT": 0.05, "VNQ": 0.05,
	},
	domain.RiskModerate: {
		"BTC": 0.10, "ETH": 0.10, "SPY": 0.30, "QQQ": 0.20,
		"GLD": 0.10, "TLT": 0.15, "VNQ": 0.05,
	},
}

// StaticBackend serves hard-coded profile tables restricted to the requested
// universe. It is the capability-gated fallback behind the same Backend
// interface as the statistical optimizer.
type StaticBackend struct{}

// NewStaticBackend creates a table-driven backend.
func NewStaticBackend() *StaticBackend {
	return &StaticBackend{}
}

// Optimize returns the profile's table weights restricted to req.Symbols and
// renormalized to sum to 1. When no table asset is present in the universe,
// every asset gets an equal weight.
func (b *StaticBackend) Optimize(req Request) (domain.Allocation, error) {
	if len(req.Symbols) == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}

	table, ok := staticTables[req.Profile]
	if !ok {
		return nil, fmt.Errorf("unknown risk profile: %s", req.Profile)
	}

	weights := make(domain.Allocation, len(req.Symbols))
	total := 0.0
	for _, symbol := range req.Symbols {
		w := table[symbol]
		weights[symbol] = w
		total += w
	}

	if total > 0 {
		for symbol := range weights {
			weights[symbol] /= total
		}
		return weights, nil
	}

	equal := 1.0 / float64(len(req.Symbols))
	for symbol := range weights {
		weights[symbol] = equal
	}
	return weights, nil
}

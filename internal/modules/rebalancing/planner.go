// Package rebalancing turns current-vs-target weight drift into an ordered
// list of trades.
package rebalancing

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// DefaultThreshold is the materiality threshold: drift at or below 1% is
// considered already balanced and generates no trade.
const DefaultThreshold = 0.01

// Planner diffs allocations into buy/sell actions.
type Planner struct {
	threshold float64
	log       zerolog.Logger
}

// NewPlanner creates a planner with the given materiality threshold.
func NewPlanner(threshold float64, log zerolog.Logger) *Planner {
	return &Planner{
		threshold: threshold,
		log:       log.With().Str("component", "rebalancing").Logger(),
	}
}

// Plan computes the trades needed to move current to target. Only deltas
// strictly above the threshold are emitted; the result is ordered by absolute
// delta descending so the most material drift comes first. Assets held in
// current but absent from target are left untouched: full position exit is a
// caller decision.
func (p *Planner) Plan(current, target domain.Allocation) []domain.RebalancingTrade {
	trades := make([]domain.RebalancingTrade, 0, len(target))

	for asset, targetWeight := range target {
		currentWeight := current[asset]
		delta := targetWeight - currentWeight

		if math.Abs(delta) <= p.threshold {
			continue
		}

		action := domain.ActionBuy
		if delta < 0 {
			action = domain.ActionSell
		}

		trades = append(trades, domain.RebalancingTrade{
			Symbol:        asset,
			Action:        action,
			WeightChange:  math.Abs(delta),
			CurrentWeight: currentWeight,
			TargetWeight:  targetWeight,
		})
	}

	sort.Slice(trades, func(i, j int) bool {
		if trades[i].WeightChange != trades[j].WeightChange {
			return trades[i].WeightChange > trades[j].WeightChange
		}
		return trades[i].Symbol < trades[j].Symbol
	})

	if len(trades) > 0 {
		p.log.Debug().Int("trades", len(trades)).Msg("Planned rebalancing trades")
	}
	return trades
}

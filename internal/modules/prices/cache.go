// Package prices provides cached access to historical price series.
// The cache is the only mutable state shared between analytics calls.
package prices

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Provider fetches adjusted-close series from an external source.
type Provider interface {
	FetchAdjustedClose(ctx context.Context, symbols []string, period domain.Period) (map[string]domain.AssetSeries, error)
}

// HistoryStore is an optional persistent fallback tier consulted when the
// provider is unreachable, and written through on successful fetches.
type HistoryStore interface {
	SavePrices(symbol string, points []domain.PricePoint) error
	RecentPrices(symbol string, limit int) ([]domain.PricePoint, error)
}

type cacheEntry struct {
	series    map[string]domain.AssetSeries
	fetchedAt time.Time
}

// Cache memoizes fetched price frames per symbol-set/period with a TTL.
// Entries are immutable once stored; a refetch replaces the whole entry, so
// concurrent readers never observe a partially populated frame.
type Cache struct {
	provider Provider
	history  HistoryStore // optional, may be nil
	ttl      time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry

	log zerolog.Logger
}

// New creates a price cache. history may be nil to disable the persistent
// fallback tier.
func New(provider Provider, history HistoryStore, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		provider: provider,
		history:  history,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
		log:      log.With().Str("service", "price_cache").Logger(),
	}
}

// SetClock overrides the cache clock. Intended for tests.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

func cacheKey(symbols []string, period domain.Period) string {
	return strings.Join(symbols, ",") + "|" + string(period)
}

// periodTradingDays is the approximate number of daily observations a period
// covers, used to bound history-store fallback reads.
func periodTradingDays(period domain.Period) int {
	switch period {
	case domain.Period3Months:
		return 63
	default:
		return 252
	}
}

// GetSeries returns aligned price series for the requested symbols. On a
// cache miss it fetches from the provider; on provider failure it falls back
// to the history store. A failed fetch yields an empty map, never an error:
// downstream components apply their own fallback policy.
//
// Two concurrent misses on the same key may both fetch; the last writer wins
// and the stored values are immutable, so the race is duplicate work, not a
// correctness hazard.
func (c *Cache) GetSeries(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries {
	if len(symbols) == 0 {
		return map[string]domain.AssetSeries{}
	}

	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	key := cacheKey(sorted, period)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.log.Debug().Str("key", key).Msg("Cache hit")
		return entry.series
	}

	series := c.fetch(ctx, sorted, period)
	if len(series) == 0 {
		// Nothing usable; do not poison the cache so the next call retries.
		return map[string]domain.AssetSeries{}
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{series: series, fetchedAt: c.now()}
	c.mu.Unlock()

	return series
}

// fetch retrieves raw series, fills gaps from the history store, and aligns
// them row-wise across the requested symbol set. No lock is held while the
// network fetch is in flight.
func (c *Cache) fetch(ctx context.Context, symbols []string, period domain.Period) map[string]domain.AssetSeries {
	raw, err := c.provider.FetchAdjustedClose(ctx, symbols, period)
	if err != nil {
		c.log.Warn().Err(err).Strs("symbols", symbols).Msg("Provider fetch failed, trying history store")
		raw = map[string]domain.AssetSeries{}
	}

	// Write successful fetches through to the history store.
	if c.history != nil {
		for symbol, s := range raw {
			if err := c.history.SavePrices(symbol, s.Points); err != nil {
				c.log.Warn().Str("symbol", symbol).Err(err).Msg("Failed to persist price series")
			}
		}
	}

	// Fill symbols the provider could not serve from the history store.
	if c.history != nil {
		limit := periodTradingDays(period)
		for _, symbol := range symbols {
			if _, ok := raw[symbol]; ok {
				continue
			}
			points, err := c.history.RecentPrices(symbol, limit)
			if err != nil || len(points) == 0 {
				continue
			}
			c.log.Warn().Str("symbol", symbol).Int("points", len(points)).Msg("Using stale prices from history store")
			raw[symbol] = domain.AssetSeries{Symbol: symbol, Points: points}
		}
	}

	return alignSeries(symbols, raw)
}

// alignSeries drops rows where any requested symbol is missing a value, the
// frame-wise dropna semantics downstream statistics depend on. If any symbol
// has no data at all, no row survives and the result is empty.
func alignSeries(symbols []string, raw map[string]domain.AssetSeries) map[string]domain.AssetSeries {
	if len(raw) < len(symbols) {
		return map[string]domain.AssetSeries{}
	}

	// Index prices by timestamp per symbol.
	indexed := make(map[string]map[int64]float64, len(symbols))
	for _, symbol := range symbols {
		s := raw[symbol]
		byTime := make(map[int64]float64, len(s.Points))
		for _, p := range s.Points {
			byTime[p.Time.Unix()] = p.Price
		}
		indexed[symbol] = byTime
	}

	// Keep timestamps present for every symbol.
	var shared []int64
	for ts := range indexed[symbols[0]] {
		keep := true
		for _, symbol := range symbols[1:] {
			if _, ok := indexed[symbol][ts]; !ok {
				keep = false
				break
			}
		}
		if keep {
			shared = append(shared, ts)
		}
	}
	if len(shared) == 0 {
		return map[string]domain.AssetSeries{}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	aligned := make(map[string]domain.AssetSeries, len(symbols))
	for _, symbol := range symbols {
		points := make([]domain.PricePoint, len(shared))
		for i, ts := range shared {
			points[i] = domain.PricePoint{Time: time.Unix(ts, 0).UTC(), Price: indexed[symbol][ts]}
		}
		aligned[symbol] = domain.AssetSeries{Symbol: symbol, Points: points}
	}
	return aligned
}


// Package yahoo provides adjusted-close price history fetching from the
// Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
)

// Client for the Yahoo Finance chart API.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new chart API client with a bounded request timeout.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://query1.finance.yahoo.com/v8/finance/chart",
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// ResolveSymbol maps common portfolio symbols to provider tickers.
func ResolveSymbol(symbol string) string {
	switch strings.ToUpper(symbol) {
	case "BTC":
		return "BTC-USD"
	case "ETH":
		return "ETH-USD"
	default:
		return symbol
	}
}

// chartResponse is the subset of the chart API payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchAdjustedClose fetches daily adjusted-close series for the given
// symbols. Symbols that fail individually are omitted from the result; an
// error is returned only when every symbol fails.
func (c *Client) FetchAdjustedClose(ctx context.Context, symbols []string, period domain.Period) (map[string]domain.AssetSeries, error) {
	if len(symbols) == 0 {
		return map[string]domain.AssetSeries{}, nil
	}

	result := make(map[string]domain.AssetSeries, len(symbols))
	var lastErr error

	for _, symbol := range symbols {
		series, err := c.fetchSymbol(ctx, symbol, period)
		if err != nil {
			c.log.Warn().Str("symbol", symbol).Err(err).Msg("Price fetch failed")
			lastErr = err
			continue
		}
		result[symbol] = series
	}

	if len(result) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all price fetches failed: %w", lastErr)
	}
	return result, nil
}

func (c *Client) fetchSymbol(ctx context.Context, symbol string, period domain.Period) (domain.AssetSeries, error) {
	ticker := ResolveSymbol(symbol)
	endpoint := fmt.Sprintf("%s/%s?range=%s&interval=1d", c.baseURL, url.PathEscape(ticker), period)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.AssetSeries{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "decentralfund-dao/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AssetSeries{}, fmt.Errorf("chart request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AssetSeries{}, fmt.Errorf("chart API returned status %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.AssetSeries{}, fmt.Errorf("failed to parse chart response: %w", err)
	}

	if payload.Chart.Error != nil {
		return domain.AssetSeries{}, fmt.Errorf("chart API error: %s", payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return domain.AssetSeries{}, fmt.Errorf("chart API returned no result for %s", ticker)
	}

	res := payload.Chart.Result[0]

	// Prefer adjusted close, fall back to raw close.
	var closes []*float64
	if len(res.Indicators.AdjClose) > 0 {
		closes = res.Indicators.AdjClose[0].AdjClose
	}
	if len(closes) == 0 && len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}
	if len(closes) == 0 || len(res.Timestamp) == 0 {
		return domain.AssetSeries{}, fmt.Errorf("chart API returned empty series for %s", ticker)
	}

	points := make([]domain.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, domain.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}

	if len(points) == 0 {
		return domain.AssetSeries{}, fmt.Errorf("no usable price points for %s", ticker)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("ticker", ticker).
		Int("points", len(points)).
		Msg("Fetched price series")

	return domain.AssetSeries{Symbol: symbol, Points: points}, nil
}

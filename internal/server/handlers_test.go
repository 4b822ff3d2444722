package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/internal/modules/governance"
	"github.com/suyash242004/decentralfund-dao/internal/modules/insights"
	"github.com/suyash242004/decentralfund-dao/internal/modules/optimization"
	"github.com/suyash242004/decentralfund-dao/internal/modules/rebalancing"
	"github.com/suyash242004/decentralfund-dao/internal/modules/reports"
	"github.com/suyash242004/decentralfund-dao/internal/modules/scoring"
	"github.com/suyash242004/decentralfund-dao/internal/modules/sentiment"
)

// emptySeriesSource simulates an unreachable price provider.
type emptySeriesSource struct{}

func (emptySeriesSource) GetSeries(context.Context, []string, domain.Period) map[string]domain.AssetSeries {
	return map[string]domain.AssetSeries{}
}

func newTestServer() *Server {
	log := zerolog.Nop()
	source := emptySeriesSource{}

	optService := optimization.NewService(
		source,
		optimization.NewMVBackend(0.02),
		optimization.NewStaticBackend(),
		rebalancing.NewPlanner(rebalancing.DefaultThreshold, log),
		scoring.NewConfidenceScorer(0.02, 60, log),
		0.02,
		252,
		log,
	)
	insightService := insights.NewService(source, insights.NewGenerator(log), log)
	analyzer := sentiment.NewDefaultAnalyzer(log)

	return New(Config{
		Port:         0,
		Log:          log,
		Optimization: optService,
		Insights:     insightService,
		Sentiment:    analyzer,
		Governance:   governance.NewPredictor(analyzer, log),
		Reports:      reports.NewService(source, insightService, 0.02, log),
		DevMode:      true,
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleOptimize_Fallback(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "POST", "/api/portfolio/optimize",
		`{"current_allocation":{"BTC":0.5,"SPY":0.5},"risk_tolerance":"conservative"}`)

	require.Equal(t, http.StatusOK, w.Code)
	allocation, ok := body["recommended_allocation"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.05/0.35, allocation["BTC"], 1e-6)
	assert.InDelta(t, 0.08, body["expected_return"], 1e-9)
}

func TestHandleOptimize_DefaultsApplied(t *testing.T) {
	s := newTestServer()
	// No risk tolerance given: moderate is assumed.
	w, _ := doJSON(t, s, "POST", "/api/portfolio/optimize",
		`{"current_allocation":{"SPY":1.0}}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleOptimize_InvalidInput(t *testing.T) {
	s := newTestServer()

	w, body := doJSON(t, s, "POST", "/api/portfolio/optimize",
		`{"current_allocation":{"SPY":1.0},"risk_tolerance":"yolo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body, "error")

	w, _ = doJSON(t, s, "POST", "/api/portfolio/optimize", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, s, "POST", "/api/portfolio/optimize", `{"current_allocation":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMarketInsights_NoData(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "GET", "/api/insights/market", "")

	require.Equal(t, http.StatusOK, w.Code)
	// General insights survive a dead price provider.
	assert.InDelta(t, 3, body["count"], 0)
}

func TestHandleMarketInsights_AssetFilter(t *testing.T) {
	s := newTestServer()
	w, _ := doJSON(t, s, "GET", "/api/insights/market?assets=BTC-USD,%20SPY", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAnalyzeSentiment(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "POST", "/api/sentiment/analyze",
		`{"text":"Strong growth and impressive rally ahead"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "positive", body["sentiment"])
}

func TestHandleAnalyzeSentiment_EmptyText(t *testing.T) {
	s := newTestServer()
	w, _ := doJSON(t, s, "POST", "/api/sentiment/analyze", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePredictProposal(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "POST", "/api/governance/predict",
		`{"proposal_text":"Increase treasury allocation","voting_history":[{"passed":true},{"passed":true}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "predicted_outcome")
	assert.Contains(t, body, "historical_context")
}

func TestHandlePredictProposal_MissingText(t *testing.T) {
	s := newTestServer()
	w, _ := doJSON(t, s, "POST", "/api/governance/predict", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleInvestmentReport(t *testing.T) {
	s := newTestServer()
	w, body := doJSON(t, s, "POST", "/api/reports/investment",
		`{"total_value":120000,"total_invested":100000,"assets":[{"symbol":"SPY","allocation":60},{"symbol":"GLD","allocation":40}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	summary, ok := body["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 20000, summary["unrealized_gains"], 1e-6)
	assert.NotEmpty(t, body["id"])
}

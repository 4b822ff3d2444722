package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/suyash242004/decentralfund-dao/internal/domain"
	"github.com/suyash242004/decentralfund-dao/internal/modules/governance"
	"github.com/suyash242004/decentralfund-dao/internal/modules/reports"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "decentralfund-analytics",
	})
}

type optimizeRequest struct {
	CurrentAllocation map[string]float64 `json:"current_allocation"`
	RiskTolerance     string             `json:"risk_tolerance"`
	HorizonMonths     int                `json:"investment_horizon_months"`
	OverrideReturns   map[string]float64 `json:"override_returns,omitempty"`
}

// handleOptimizePortfolio handles POST /api/portfolio/optimize.
func (s *Server) handleOptimizePortfolio(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RiskTolerance == "" {
		req.RiskTolerance = string(domain.RiskModerate)
	}
	if req.HorizonMonths <= 0 {
		req.HorizonMonths = 12
	}

	result, err := s.optimization.Optimize(
		r.Context(),
		domain.Allocation(req.CurrentAllocation),
		domain.RiskProfile(req.RiskTolerance),
		req.HorizonMonths,
		req.OverrideReturns,
	)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleMarketInsights handles GET /api/insights/market. An optional
// "assets" query parameter takes a comma-separated symbol list.
func (s *Server) handleMarketInsights(w http.ResponseWriter, r *http.Request) {
	var assets []string
	if raw := r.URL.Query().Get("assets"); raw != "" {
		for _, symbol := range strings.Split(raw, ",") {
			if symbol = strings.TrimSpace(symbol); symbol != "" {
				assets = append(assets, symbol)
			}
		}
	}

	insights := s.insights.MarketReport(r.Context(), assets)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	})
}

type sentimentRequest struct {
	Text  string `json:"text"`
	Topic string `json:"context,omitempty"`
}

// handleAnalyzeSentiment handles POST /api/sentiment/analyze.
func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	s.writeJSON(w, http.StatusOK, s.sentiment.Analyze(req.Text, req.Topic))
}

type predictRequest struct {
	ProposalText  string            `json:"proposal_text"`
	VotingHistory []governance.Vote `json:"voting_history,omitempty"`
}

// handlePredictProposal handles POST /api/governance/predict.
func (s *Server) handlePredictProposal(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ProposalText) == "" {
		s.writeError(w, http.StatusBadRequest, "proposal_text is required")
		return
	}

	s.writeJSON(w, http.StatusOK, s.governance.Predict(req.ProposalText, req.VotingHistory))
}

// handleInvestmentReport handles POST /api/reports/investment.
func (s *Server) handleInvestmentReport(w http.ResponseWriter, r *http.Request) {
	var portfolio reports.PortfolioData
	if err := json.NewDecoder(r.Body).Decode(&portfolio); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.writeJSON(w, http.StatusOK, s.reports.Generate(r.Context(), portfolio))
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

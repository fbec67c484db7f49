package service

import (
	"net/http"

	"github.com/greenbdg/africaesg/backend/internal/insights"
)

type pillarRequest struct {
	CompanyName     string         `json:"company_name"`
	Period          string         `json:"period"`
	Summary         map[string]any `json:"summary"`
	Metrics         map[string]any `json:"metrics"`
	InvoiceBaseline map[string]any `json:"invoice_baseline"`
}

type pillarResponse struct {
	Metrics   map[string]any `json:"metrics"`
	Insights  []string       `json:"insights"`
	Live      bool           `json:"live"`
	Timestamp string         `json:"timestamp"`
}

func (s *Service) handleEnvironmentalInsights(w http.ResponseWriter, r *http.Request) {
	var req pillarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload := map[string]any{
		"company_name":     req.CompanyName,
		"period":           req.Period,
		"summary":          orEmpty(req.Summary),
		"metrics":          orEmpty(req.Metrics),
		"invoice_baseline": orEmpty(req.InvoiceBaseline),
		"server_time":      s.nowISO(),
	}

	// The environmental prompt sees the invoice baseline alongside the
	// submitted metrics so the narrative can reference billed consumption.
	merged := map[string]any{}
	for k, v := range req.Metrics {
		merged[k] = v
	}
	if len(req.InvoiceBaseline) > 0 {
		merged["invoice_baseline"] = req.InvoiceBaseline
	}

	result := s.resolver.PillarInsights(r.Context(), insights.PillarEnvironmental, merged)
	s.pushLive()
	writeJSON(w, http.StatusOK, pillarResponse{
		Metrics:   payload,
		Insights:  result.Insights,
		Live:      result.Live,
		Timestamp: s.nowISO(),
	})
}

func (s *Service) handleSocialInsights(w http.ResponseWriter, r *http.Request) {
	s.handlePillar(w, r, insights.PillarSocial)
}

func (s *Service) handleGovernanceInsights(w http.ResponseWriter, r *http.Request) {
	s.handlePillar(w, r, insights.PillarGovernance)
}

func (s *Service) handlePillar(w http.ResponseWriter, r *http.Request, pillar insights.Pillar) {
	var req pillarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	metrics := orEmpty(req.Metrics)
	result := s.resolver.PillarInsights(r.Context(), pillar, metrics)
	s.pushLive()
	writeJSON(w, http.StatusOK, pillarResponse{
		Metrics:   metrics,
		Insights:  result.Insights,
		Live:      result.Live,
		Timestamp: s.nowISO(),
	})
}

// handleGovernanceInsightsShim keeps the legacy GET route answering with a
// pointer to the POST contract.
func (s *Service) handleGovernanceInsightsShim(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pillarResponse{
		Metrics: map[string]any{},
		Insights: []string{
			"Governance insights endpoint is now POST.",
			`{"Call POST /api/governance-insights with JSON body: { "metrics": { ... } }"}`,
		},
		Live:      false,
		Timestamp: s.nowISO(),
	})
}

func (s *Service) handleMiniReport(w http.ResponseWriter, r *http.Request) {
	var req pillarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, live := s.resolver.MiniReport(r.Context(), insights.MiniReportPayload{
		CompanyName:     req.CompanyName,
		Period:          req.Period,
		Summary:         orEmpty(req.Summary),
		Metrics:         orEmpty(req.Metrics),
		InvoiceBaseline: orEmpty(req.InvoiceBaseline),
	})

	s.pushLive()
	writeJSON(w, http.StatusOK, map[string]any{
		"baseline":                 report.Baseline,
		"benchmark":                report.Benchmark,
		"performance_vs_benchmark": report.PerformanceVsBenchmark,
		"ai_recommendations":       recommendations(report.AIRecommendations),
		"live":                     live,
		"timestamp":                s.nowISO(),
	})
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// recommendations never serializes as JSON null.
func recommendations(recs []string) []string {
	if recs == nil {
		return []string{}
	}
	return recs
}

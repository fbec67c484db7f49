package service

import (
	"fmt"
	"net/http"
)

// endpointList is advertised by /health for frontend discovery.
var endpointList = []string{
	"/", "/health",
	"/auth/login", "/auth/me",
	"/esg/analyse", "/api/esg-data",
	"/api/environmental-insights", "/api/social-insights", "/api/governance-insights",
	"/api/invoice-upload", "/api/invoice-bulk-upload", "/api/invoice-environmental-insights",
	"/api/ai-mini-report",
	"/api/invoices", "/api/invoices/query",
	"/ws/live-ai",
}

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":             "AfricaESG.AI Backend",
		"version":             Version,
		"status":              "operational",
		"backend_url":         fmt.Sprintf("http://localhost:%d", s.cfg.Port),
		"cors_enabled":        true,
		"credentials_allowed": true,
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"timestamp":     s.nowISO(),
		"cors_origins":  s.cfg.AllowedOrigins,
		"backend_port":  s.cfg.Port,
		"frontend_urls": s.cfg.AllowedOrigins,
		"endpoints":     endpointList,
	})
}

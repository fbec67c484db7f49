// Package service exposes the backend's HTTP surface: ESG scoring, insight
// generation, invoice ingestion and querying, and the live WebSocket feed.
package service

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/greenbdg/africaesg/backend/internal/config"
	"github.com/greenbdg/africaesg/backend/internal/extraction"
	"github.com/greenbdg/africaesg/backend/internal/insights"
	"github.com/greenbdg/africaesg/backend/internal/live"
	"github.com/greenbdg/africaesg/backend/internal/state"
	"github.com/greenbdg/africaesg/backend/internal/store"
)

// Version is reported by the root and health endpoints.
const Version = "2.2.0"

// Service wires the domain components behind the router. Handlers mutate
// state only through the State handle and broadcast after every mutation.
type Service struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     store.Store
	state     *state.State
	hub       *live.Hub
	extractor *extraction.Extractor
	resolver  *insights.Resolver
	now       func() time.Time
}

// New assembles the service.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	st store.Store,
	sessions *state.State,
	hub *live.Hub,
	extractor *extraction.Extractor,
	resolver *insights.Resolver,
) *Service {
	return &Service{
		cfg:       cfg,
		log:       log,
		store:     st,
		state:     sessions,
		hub:       hub,
		extractor: extractor,
		resolver:  resolver,
		now:       time.Now,
	}
}

// Router builds the chi route tree.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Post("/auth/login", s.handleLogin)
	r.Get("/auth/me", s.handleMe)

	r.Post("/esg/analyse", s.handleAnalyse)

	r.Route("/api", func(r chi.Router) {
		r.Get("/esg-data", s.handleESGData)

		r.Post("/environmental-insights", s.handleEnvironmentalInsights)
		r.Post("/social-insights", s.handleSocialInsights)
		r.Post("/governance-insights", s.handleGovernanceInsights)
		r.Get("/governance-insights", s.handleGovernanceInsightsShim)
		r.Post("/ai-mini-report", s.handleMiniReport)

		r.Post("/invoice-upload", s.handleInvoiceUpload)
		r.Post("/invoice-bulk-upload", s.handleInvoiceBulkUpload)
		r.Get("/invoices", s.handleListInvoices)
		r.Get("/invoices/query", s.handleQueryInvoices)
		r.Get("/invoice-environmental-insights", s.handleInvoiceEnvironmentalInsights)

		r.Post("/invoices/save-to-mongodb", s.handleSaveInvoices)
		r.Get("/invoices/load-from-mongodb", s.handleLoadInvoices)
		r.Get("/invoices/mongodb-stats", s.handleInvoiceStats)
		r.Post("/invoices/clear-mongodb", s.handleClearInvoices)
	})

	r.Get("/ws/live-ai", s.hub.ServeHTTP)

	return r
}

// pushLive broadcasts the current snapshot to live subscribers.
func (s *Service) pushLive() {
	s.hub.Push()
}

func (s *Service) nowISO() string {
	return extraction.Timestamp(s.now())
}

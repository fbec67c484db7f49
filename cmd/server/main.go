package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/greenbdg/africaesg/backend/internal/config"
	"github.com/greenbdg/africaesg/backend/internal/extraction"
	"github.com/greenbdg/africaesg/backend/internal/insights"
	"github.com/greenbdg/africaesg/backend/internal/live"
	"github.com/greenbdg/africaesg/backend/internal/logger"
	"github.com/greenbdg/africaesg/backend/internal/model"
	"github.com/greenbdg/africaesg/backend/internal/service"
	"github.com/greenbdg/africaesg/backend/internal/state"
	"github.com/greenbdg/africaesg/backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()

	var invoiceStore store.Store
	if cfg.FirestoreProject != "" {
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		invoiceStore = store.NewFirestoreStore(client)
		log.Info().Str("project", cfg.FirestoreProject).Msg("using Firestore invoice store")
	} else {
		invoiceStore = store.NewMemoryStore()
		log.Info().Msg("no Firestore project configured, using in-memory invoice store")
	}
	defer invoiceStore.Close()

	files := store.NewSnapshotFiles(cfg.DataDir)
	sessions := state.New(files, logger.WithComponent(log, "state"))
	sessions.EnsureSeed(time.Now())

	generator := insights.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !generator.Configured() {
		log.Info().Msg("OPENAI_API_KEY not set, insights will use static fallbacks")
	}
	resolver := insights.NewResolver(generator, logger.WithComponent(log, "insights"))

	hub := live.NewHub(
		func() *model.LiveSnapshot { return sessions.Snapshot(time.Now()) },
		cfg.AllowedOrigins,
		logger.WithComponent(log, "live"),
	)

	svc := service.New(
		cfg,
		logger.WithComponent(log, "service"),
		invoiceStore,
		sessions,
		hub,
		extraction.NewExtractor(),
		resolver,
	)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(corsWrapper.Handler(svc.Router()), &http2.Server{}),
	}

	log.Info().Int("port", cfg.Port).Strs("origins", cfg.AllowedOrigins).Msg("starting backend")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "pmsbridge/internal/adapters/http_server"
	"pmsbridge/internal/adapters/mews"
	"pmsbridge/internal/adapters/observability"
	"pmsbridge/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "webhookd")

	observability.Serve()

	if cfg.MewsWebhookSecret == "" {
		log.Fatal().Msg("MEWS_WEBHOOK_SECRET is required")
	}

	// sink: log-only for now; downstream consumers hang off this hook
	sink := server.EventSinkFunc(func(_ context.Context, enterpriseID string, ev mews.WebhookEvent) error {
		log.Info().
			Str("enterprise_id", enterpriseID).
			Str("event_type", ev.Type).
			Str("entity_id", ev.ID).
			Msg("webhook event")
		return nil
	})

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Secret: cfg.MewsWebhookSecret, Sink: sink})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("webhook receiver listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

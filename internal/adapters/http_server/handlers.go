package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"pmsbridge/internal/adapters/mews"
	"pmsbridge/internal/adapters/observability"
)

// SignatureHeader carries the sender's HMAC over the raw body.
const SignatureHeader = "X-Mews-Signature"

// EventSink receives verified webhook events one at a time. Implementations
// must tolerate redelivery; the sender retries on non-2xx.
type EventSink interface {
	HandleEvent(ctx context.Context, enterpriseID string, ev mews.WebhookEvent) error
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ctx context.Context, enterpriseID string, ev mews.WebhookEvent) error

func (f EventSinkFunc) HandleEvent(ctx context.Context, enterpriseID string, ev mews.WebhookEvent) error {
	return f(ctx, enterpriseID, ev)
}

type Handlers struct {
	Secret string
	Sink   EventSink
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/webhooks/mews", h.mewsWebhook)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func (h *Handlers) mewsWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "cannot read body")
		return
	}

	if !mews.VerifySignature(h.Secret, body, r.Header.Get(SignatureHeader)) {
		observability.ObserveWebhook("mews", "unknown", "rejected")
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "signature mismatch")
		return
	}

	wh, err := mews.ParseWebhook(body)
	if err != nil {
		observability.ObserveWebhook("mews", "unknown", "invalid")
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	// Per-event outcomes are individual: one failing event must not hide
	// delivery of its siblings, so failures only get logged and counted.
	for _, ev := range wh.Events {
		if h.Sink == nil {
			observability.ObserveWebhook("mews", ev.Type, "dropped")
			continue
		}
		if err := h.Sink.HandleEvent(r.Context(), wh.EnterpriseID, ev); err != nil {
			observability.ObserveWebhook("mews", ev.Type, "error")
			log.Error().Err(err).
				Str("enterprise_id", wh.EnterpriseID).
				Str("event_type", ev.Type).
				Str("entity_id", ev.ID).
				Msg("webhook event failed")
			continue
		}
		observability.ObserveWebhook("mews", ev.Type, "ok")
	}

	w.WriteHeader(http.StatusNoContent)
}

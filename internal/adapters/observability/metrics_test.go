package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pmsbridge/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so counters are non-zero
	observability.ObserveVendor("bookingmanager", "getProperties", 200, 35*time.Millisecond)
	observability.ObserveWebhook("mews", "ServiceOrderUpdated", "ok")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "pmsbridge_vendor_requests_total") {
		t.Fatalf("expected pmsbridge_vendor_requests_total in output")
	}
	if !strings.Contains(out, "pmsbridge_webhook_events_total") {
		t.Fatalf("expected pmsbridge_webhook_events_total in output")
	}
}

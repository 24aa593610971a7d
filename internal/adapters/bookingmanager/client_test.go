package bookingmanager_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pmsbridge/internal/adapters/bookingmanager"
)

func newTestClient(t *testing.T, base string) *bookingmanager.Client {
	t.Helper()
	cl, err := bookingmanager.NewClient(base, "test-key", "test-user", 100, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestClient_CredentialsRequired(t *testing.T) {
	if _, err := bookingmanager.NewClient("http://x", "", "user", 5, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	if _, err := bookingmanager.NewClient("http://x", "key", "", 5, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty username")
	}
}

func TestClient_PostsCredentialsInForm(t *testing.T) {
	var gotKey, gotUser, gotProp string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotKey = r.PostForm.Get("apiKey")
		gotUser = r.PostForm.Get("username")
		gotProp = r.PostForm.Get("propertyId")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<property id="341"><name>Villa Mar</name></property>`))
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p, err := api.Properties.Get(ctx, 341)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ExternalID != 341 || p.Name != "Villa Mar" {
		t.Fatalf("unexpected property: %+v", p)
	}
	if gotKey != "test-key" || gotUser != "test-user" || gotProp != "341" {
		t.Fatalf("unexpected form: key=%q user=%q prop=%q", gotKey, gotUser, gotProp)
	}
}

func TestClient_VendorErrorElement(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><error code="E102"><message>invalid credentials</message></error></response>`))
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	_, err := api.Bookings.ListBetween(context.Background(),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	var apiErr *bookingmanager.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "E102" || apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestClient_NonNumericErrorCodeKeptVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<error code="#AUTH">denied</error>`))
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	_, err := api.Properties.List(context.Background(), bookingmanager.PropertiesRequest{})
	var apiErr *bookingmanager.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "#AUTH" {
		t.Fatalf("code not preserved: %q", apiErr.Code)
	}
	if apiErr.Message != "denied" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestClient_HTTPErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	if _, err := api.Properties.Get(context.Background(), 1); err == nil {
		t.Fatalf("expected error for 500")
	}
}

func TestClient_RequestValidationShortCircuits(t *testing.T) {
	// server must never be hit for an invalid request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	if _, err := api.Properties.Get(context.Background(), 0); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := api.Calendar.GetForProperty(context.Background(), 341, time.Time{}, time.Time{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := api.Availability.Get(context.Background(), bookingmanager.AvailabilityRequest{
		PropertyID: 1,
		From:       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}); err == nil {
		t.Fatalf("expected validation error for inverted period")
	}
}

func TestClient_ConvenienceFormsMatchPayloadForms(t *testing.T) {
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		bodies = append(bodies, r.PostForm.Encode())
		_, _ = w.Write([]byte(`<bookings></bookings>`))
	}))
	defer ts.Close()

	api := bookingmanager.NewAPI(newTestClient(t, ts.URL))
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	if _, err := api.Bookings.List(context.Background(), bookingmanager.BookingsRequest{From: from, To: to}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := api.Bookings.ListBetween(context.Background(), from, to); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(bodies) != 2 || bodies[0] != bodies[1] {
		t.Fatalf("payload and positional forms diverged: %v", bodies)
	}
}

// Package bookingmanager wraps the BookingManager XML API: request payload
// builders, the HTTP transport, and mappers turning responses into typed
// value objects.
package bookingmanager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pmsbridge/internal/adapters/observability"
	"pmsbridge/internal/wire"
)

// Vendor date layouts.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	monthLayout    = "2006-01"
)

type Client struct {
	base string
	key  string
	user string
	hc   *http.Client
	rl   *rate.Limiter
	log  zerolog.Logger
}

func NewClient(base, key, user string, rps int, log zerolog.Logger) (*Client, error) {
	if key == "" || user == "" {
		return nil, fmt.Errorf("bookingmanager: api key and username are required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		user: user,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		log:  log,
	}, nil
}

// call POSTs one form-encoded request to endpoint and decodes the XML body to
// a wire node. Credentials travel in the form per the vendor contract. Any
// <error> element short-circuits into *APIError. No retries here; retry
// policy, if wanted, belongs to the caller's http.Client.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	for k, vs := range params {
		form[k] = vs
	}
	form.Set("apiKey", c.key)
	form.Set("username", c.user)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", "pmsbridge/1.0")

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveVendor("bookingmanager", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("bookingmanager: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	observability.ObserveVendor("bookingmanager", endpoint, resp.StatusCode, time.Since(start))
	c.log.Debug().
		Str("req_id", reqID).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("bookingmanager call")
	if err != nil {
		return nil, fmt.Errorf("bookingmanager: %s: read body: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bookingmanager: %s: status %d: %s",
			endpoint, resp.StatusCode, strings.TrimSpace(string(truncate(body, 512))))
	}

	doc, err := wire.DecodeXML(body)
	if err != nil {
		return nil, fmt.Errorf("bookingmanager: %s: %w", endpoint, err)
	}
	if apiErr := apiError(doc); apiErr != nil {
		return nil, apiErr
	}
	return doc, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

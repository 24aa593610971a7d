// Package mews wraps the Mews Connector JSON API: request builders, the
// token-authenticated HTTP transport, response mappers and webhook
// verification.
package mews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pmsbridge/internal/adapters/observability"
	"pmsbridge/internal/wire"
)

// Mews timestamps are RFC3339 UTC.
const timeLayout = time.RFC3339

type Client struct {
	base        string
	clientToken string
	accessToken string
	clientName  string
	hc          *http.Client
	rl          *rate.Limiter
	log         zerolog.Logger
}

func NewClient(base, clientToken, accessToken, clientName string, rps int, log zerolog.Logger) (*Client, error) {
	if clientToken == "" || accessToken == "" {
		return nil, fmt.Errorf("mews: client token and access token are required")
	}
	if clientName == "" {
		clientName = "pmsbridge 1.0"
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:        strings.TrimRight(base, "/"),
		clientToken: clientToken,
		accessToken: accessToken,
		clientName:  clientName,
		hc:          &http.Client{Timeout: 20 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
		log:         log,
	}, nil
}

// post sends one JSON request to path with the three auth fields merged into
// the body, per the vendor contract, and decodes the response object. A
// non-2xx status or error-shaped body becomes *APIError. No retries.
func (c *Client) post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	payload := make(map[string]any, len(body)+3)
	for k, v := range body {
		payload[k] = v
	}
	payload["ClientToken"] = c.clientToken
	payload["AccessToken"] = c.accessToken
	payload["Client"] = c.clientName

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("mews: %s: encode request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pmsbridge/1.0")

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveVendor("mews", path, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("mews: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	observability.ObserveVendor("mews", path, resp.StatusCode, time.Since(start))
	c.log.Debug().
		Str("req_id", reqID).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("mews call")
	if err != nil {
		return nil, fmt.Errorf("mews: %s: read body: %w", path, err)
	}

	var out map[string]any
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
		if decodeErr == nil {
			if msg := wire.Str(out, "Message", ""); msg != "" {
				apiErr.Message = msg
			}
			apiErr.Code = wire.Str(out, "Code", "")
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("mews: %s: decode response: %w", path, decodeErr)
	}
	// some failures arrive as 200 with an error-shaped body
	if msg := wire.Str(out, "Message", ""); msg != "" && len(out) <= 2 {
		return nil, &APIError{Code: wire.Str(out, "Code", ""), Message: msg}
	}
	return out, nil
}

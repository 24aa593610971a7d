package mews

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tidwall/gjson"
)

// VerifySignature checks the webhook's HMAC-SHA256 hex signature over the raw
// payload bytes. Comparison is constant-time.
func VerifySignature(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

// Sign computes the hex signature a webhook sender would attach to payload.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

type WebhookEvent struct {
	Type string
	ID   string
}

type Webhook struct {
	EnterpriseID string
	Events       []WebhookEvent
}

// ParseWebhook extracts the event envelope from a raw webhook payload. It
// deliberately reads only the dispatch fields; handlers fetch full entities
// through the connector API.
func ParseWebhook(payload []byte) (*Webhook, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("mews: webhook payload is not valid json")
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return nil, fmt.Errorf("mews: webhook payload is not an object")
	}

	wh := &Webhook{EnterpriseID: doc.Get("EnterpriseId").String()}
	events := doc.Get("Events")
	if !events.Exists() {
		return nil, fmt.Errorf("mews: webhook payload has no Events")
	}
	for _, ev := range events.Array() {
		e := WebhookEvent{
			Type: ev.Get("Discriminator").String(),
			ID:   ev.Get("Value.Id").String(),
		}
		if e.Type == "" {
			e.Type = ev.Get("Type").String()
		}
		if e.Type == "" {
			continue // not dispatchable, skip without corrupting siblings
		}
		wh.Events = append(wh.Events, e)
	}
	return wh, nil
}

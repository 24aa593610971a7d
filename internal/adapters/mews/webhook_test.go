package mews_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmsbridge/internal/adapters/mews"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"Events": []}`)
	sig := mews.Sign("topsecret", payload)

	assert.True(t, mews.VerifySignature("topsecret", payload, sig))
	assert.False(t, mews.VerifySignature("topsecret", payload, "deadbeef"))
	assert.False(t, mews.VerifySignature("wrongsecret", payload, sig))
	assert.False(t, mews.VerifySignature("topsecret", []byte(`{"Events": [1]}`), sig))
}

func TestVerifySignature_EmptyInputsRejected(t *testing.T) {
	payload := []byte(`{}`)
	assert.False(t, mews.VerifySignature("", payload, mews.Sign("", payload)))
	assert.False(t, mews.VerifySignature("secret", payload, ""))
}

func TestParseWebhook(t *testing.T) {
	payload := []byte(`{
		"EnterpriseId": "ent-1",
		"Events": [
			{"Discriminator": "ServiceOrderUpdated", "Value": {"Id": "r-77"}},
			{"Type": "CustomerAdded", "Value": {"Id": "c-5"}},
			{"Value": {"Id": "orphan"}}
		]
	}`)
	wh, err := mews.ParseWebhook(payload)
	require.NoError(t, err)
	assert.Equal(t, "ent-1", wh.EnterpriseID)
	require.Len(t, wh.Events, 2)
	assert.Equal(t, mews.WebhookEvent{Type: "ServiceOrderUpdated", ID: "r-77"}, wh.Events[0])
	assert.Equal(t, mews.WebhookEvent{Type: "CustomerAdded", ID: "c-5"}, wh.Events[1])
}

func TestParseWebhook_Malformed(t *testing.T) {
	_, err := mews.ParseWebhook([]byte(`{"Events": [`))
	assert.Error(t, err)

	_, err = mews.ParseWebhook([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = mews.ParseWebhook([]byte(`{"EnterpriseId": "ent-1"}`))
	assert.Error(t, err)
}

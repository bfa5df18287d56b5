package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/checkout/domain"
)

const webhookSecret = "whsec_test"

func sign(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestCreateSessionSendsLineItems(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.test/cs_test_1"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{SecretKey: "sk_test_1", BaseURL: srv.URL}, nil)
	session, err := p.CreateSession(context.Background(), domain.SessionParams{
		Currency:   "usd",
		LineItems:  []domain.LineItem{{Name: "Sourdough", UnitAmount: 396, Quantity: 2}},
		SuccessURL: "https://shop.example/success",
		CancelURL:  "https://shop.example/cancel",
		Metadata:   map[string]string{domain.MetaUserID: "NBU_001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", session.URL)

	assert.Equal(t, []string{"396"}, form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, []string{"2"}, form["line_items[0][quantity]"])
	assert.Equal(t, []string{"usd"}, form["line_items[0][price_data][currency]"])
	assert.Equal(t, []string{"Sourdough"}, form["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, []string{"payment"}, form["mode"])
	assert.Equal(t, []string{"NBU_001"}, form["metadata[user_id]"])
}

func TestCreateSessionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad amount"}}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{SecretKey: "sk_test_1", BaseURL: srv.URL}, nil)
	_, err := p.CreateSession(context.Background(), domain.SessionParams{Currency: "usd"})
	assert.Error(t, err)
}

func TestParseConfirmation(t *testing.T) {
	p := NewProvider(Config{SecretKey: "sk_test_1", WebhookSecret: webhookSecret}, nil)
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"metadata": {"user_id": "NBU_001", "total": "2400", "items": "[]"}
		}}
	}`)

	conf, err := p.ParseConfirmation(payload, sign(payload, webhookSecret))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", conf.EventID)
	assert.Equal(t, domain.EventCheckoutCompleted, conf.Type)
	assert.Equal(t, "cs_test_1", conf.SessionID)
	assert.Equal(t, "NBU_001", conf.Metadata[domain.MetaUserID])
	assert.Equal(t, "2400", conf.Metadata[domain.MetaTotal])
}

func TestParseConfirmationOtherEventType(t *testing.T) {
	p := NewProvider(Config{WebhookSecret: webhookSecret}, nil)
	payload := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1"}}}`)

	conf, err := p.ParseConfirmation(payload, sign(payload, webhookSecret))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", conf.Type)
	assert.Empty(t, conf.Metadata)
}

func TestParseConfirmationBadSignature(t *testing.T) {
	p := NewProvider(Config{WebhookSecret: webhookSecret}, nil)
	payload := []byte(`{"id":"evt_3","object":"event","type":"checkout.session.completed"}`)

	_, err := p.ParseConfirmation(payload, sign(payload, "whsec_other"))
	assert.Error(t, err)

	_, err = p.ParseConfirmation(payload, "")
	assert.Error(t, err)
}

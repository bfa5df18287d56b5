// Package stripe adapts Stripe Checkout to the checkout session provider port.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/tair/nutribakery/internal/checkout/domain"
	"github.com/tair/nutribakery/pkg/breaker"
)

type Config struct {
	SecretKey     string
	WebhookSecret string
	// BaseURL overrides the API endpoint, empty means api.stripe.com
	BaseURL string
}

type Provider struct {
	api           *client.API
	webhookSecret string
	breaker       *breaker.Breaker
}

func NewProvider(cfg Config, cb *breaker.Breaker) *Provider {
	var backends *stripego.Backends
	if cfg.BaseURL != "" {
		backends = &stripego.Backends{
			API: stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
				URL:               stripego.String(cfg.BaseURL),
				MaxNetworkRetries: stripego.Int64(0),
				LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
			}),
		}
	}
	return &Provider{
		api:           client.New(cfg.SecretKey, backends),
		webhookSecret: cfg.WebhookSecret,
		breaker:       cb,
	}
}

func (p *Provider) CreateSession(ctx context.Context, params domain.SessionParams) (*domain.Session, error) {
	sp := &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:         stripego.String(params.SuccessURL),
		CancelURL:          stripego.String(params.CancelURL),
	}
	sp.Context = ctx
	for _, li := range params.LineItems {
		sp.LineItems = append(sp.LineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(params.Currency),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(li.Name),
				},
				UnitAmount: stripego.Int64(li.UnitAmount),
			},
			Quantity: stripego.Int64(li.Quantity),
		})
	}
	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}

	var session *stripego.CheckoutSession
	call := func(context.Context) error {
		var err error
		session, err = p.api.CheckoutSessions.New(sp)
		return err
	}
	var err error
	if p.breaker != nil {
		err = p.breaker.Execute(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &domain.Session{ID: session.ID, URL: session.URL}, nil
}

// ParseConfirmation verifies the Stripe-Signature header and extracts the session metadata
func (p *Provider) ParseConfirmation(payload []byte, signature string) (*domain.Confirmation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	conf := &domain.Confirmation{EventID: event.ID, Type: string(event.Type), Metadata: map[string]string{}}
	if conf.Type != domain.EventCheckoutCompleted || event.Data == nil {
		return conf, nil
	}

	var session stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	conf.SessionID = session.ID
	for k, v := range session.Metadata {
		conf.Metadata[k] = v
	}
	return conf, nil
}

// Package currency converts checkout totals through the RapidAPI currency converter.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/nutribakery/pkg/breaker"
	"github.com/tair/nutribakery/pkg/logger"
)

const DefaultHost = "currency-converter5.p.rapidapi.com"

var ErrMissingKey = errors.New("currency converter API key is not configured")

type Config struct {
	APIKey string
	Host   string
	// BaseURL overrides https://<Host>
	BaseURL string
	Timeout time.Duration
}

type RapidAPIConverter struct {
	apiKey  string
	host    string
	baseURL string
	client  *http.Client
	breaker *breaker.Breaker
}

type convertResponse struct {
	Status string `json:"status"`
	Rates  map[string]struct {
		Rate          decimal.Decimal `json:"rate"`
		RateForAmount decimal.Decimal `json:"rate_for_amount"`
	} `json:"rates"`
}

func NewRapidAPIConverter(cfg Config, cb *breaker.Breaker) *RapidAPIConverter {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + host
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RapidAPIConverter{
		apiKey:  cfg.APIKey,
		host:    host,
		baseURL: base,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: cb,
	}
}

// Convert returns amount expressed in the target currency
func (c *RapidAPIConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if c.apiKey == "" {
		return 0, ErrMissingKey
	}

	var converted float64
	call := func(ctx context.Context) error {
		var err error
		converted, err = c.convert(ctx, amount, from, to)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		logger.Error(ctx).Err(err).Str("from", from).Str("to", to).Float64("amount", amount).Msg("Currency conversion failed")
		return 0, err
	}

	logger.Debug(ctx).Str("from", from).Str("to", to).Float64("amount", amount).Float64("converted", converted).Msg("Currency converted")
	return converted, nil
}

func (c *RapidAPIConverter) convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/currency/convert?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("currency API error %d: %s", resp.StatusCode, string(body))
	}

	var out convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	rate, ok := out.Rates[to]
	if !ok {
		return 0, fmt.Errorf("no rate for %s in response", to)
	}
	return rate.RateForAmount.InexactFloat64(), nil
}

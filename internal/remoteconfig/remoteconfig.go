// Package remoteconfig fetches and caches the merchant configuration the
// gateway serves. Every flow consults it before launching a browser switch.
package remoteconfig

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wovenpay/paypal-switch/internal/gateway"
)

// Configuration is the merchant-level configuration relevant to PayPal
// flows, flattened from the gateway document.
type Configuration struct {
	PayPalEnabled            bool
	Environment              string
	ClientID                 string
	CurrencyIsoCode          string
	DisplayName              string
	BillingAgreementsEnabled bool
}

type Fetcher struct {
	client gateway.Client
	logger *slog.Logger

	mu     sync.Mutex
	cached *Configuration
}

func NewFetcher(client gateway.Client, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger,
	}
}

// Fetch returns the merchant configuration, hitting the gateway at most
// once until Invalidate is called.
func (f *Fetcher) Fetch(ctx context.Context) (*Configuration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil {
		return f.cached, nil
	}

	resp, err := f.client.FetchConfiguration(ctx)
	if err != nil {
		f.logger.Error("configuration fetch failed", "error", err)
		return nil, err
	}

	cfg := &Configuration{
		PayPalEnabled: resp.PayPalEnabled,
	}
	if resp.PayPal != nil {
		cfg.Environment = resp.PayPal.Environment
		cfg.ClientID = resp.PayPal.ClientID
		cfg.CurrencyIsoCode = resp.PayPal.CurrencyIsoCode
		cfg.DisplayName = resp.PayPal.DisplayName
		cfg.BillingAgreementsEnabled = resp.PayPal.BillingAgreementsEnabled
	}

	f.cached = cfg
	f.logger.Debug("configuration cached", "paypal_enabled", cfg.PayPalEnabled, "environment", cfg.Environment)
	return cfg, nil
}

// Invalidate drops the cached document so the next Fetch hits the gateway.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cached = nil
}

package remoteconfig_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wovenpay/paypal-switch/internal/gateway"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_FlattensGatewayDocument(t *testing.T) {
	client := gateway.NewMockClient()
	client.FetchConfigurationFn = func(ctx context.Context) (*gateway.ConfigurationResponse, error) {
		return &gateway.ConfigurationResponse{
			PayPalEnabled: true,
			PayPal: &gateway.PayPalConfiguration{
				Environment:              "live",
				ClientID:                 "client-abc",
				CurrencyIsoCode:          "EUR",
				DisplayName:              "Acme Shop",
				BillingAgreementsEnabled: true,
			},
		}, nil
	}

	fetcher := remoteconfig.NewFetcher(client, testLogger())
	cfg, err := fetcher.Fetch(context.Background())

	require.NoError(t, err)
	assert.True(t, cfg.PayPalEnabled)
	assert.Equal(t, "live", cfg.Environment)
	assert.Equal(t, "client-abc", cfg.ClientID)
	assert.Equal(t, "EUR", cfg.CurrencyIsoCode)
	assert.Equal(t, "Acme Shop", cfg.DisplayName)
	assert.True(t, cfg.BillingAgreementsEnabled)
}

func TestFetcher_CachesUntilInvalidated(t *testing.T) {
	client := gateway.NewMockClient()
	fetcher := remoteconfig.NewFetcher(client, testLogger())
	ctx := context.Background()

	first, err := fetcher.Fetch(ctx)
	require.NoError(t, err)
	second, err := fetcher.Fetch(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, client.FetchConfigurationCalls)

	fetcher.Invalidate()
	_, err = fetcher.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, client.FetchConfigurationCalls)
}

func TestFetcher_DoesNotCacheFailures(t *testing.T) {
	client := gateway.NewMockClient()
	fail := true
	client.FetchConfigurationFn = func(ctx context.Context) (*gateway.ConfigurationResponse, error) {
		if fail {
			return nil, errors.New("gateway unreachable")
		}
		return &gateway.ConfigurationResponse{PayPalEnabled: true}, nil
	}

	fetcher := remoteconfig.NewFetcher(client, testLogger())
	ctx := context.Background()

	_, err := fetcher.Fetch(ctx)
	require.Error(t, err)

	fail = false
	cfg, err := fetcher.Fetch(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.PayPalEnabled)
	assert.Equal(t, 2, client.FetchConfigurationCalls)
}

func TestFetcher_MissingPayPalSection(t *testing.T) {
	client := gateway.NewMockClient()
	client.FetchConfigurationFn = func(ctx context.Context) (*gateway.ConfigurationResponse, error) {
		return &gateway.ConfigurationResponse{PayPalEnabled: false}, nil
	}

	fetcher := remoteconfig.NewFetcher(client, testLogger())
	cfg, err := fetcher.Fetch(context.Background())

	require.NoError(t, err)
	assert.False(t, cfg.PayPalEnabled)
	assert.Empty(t, cfg.Environment)
	assert.False(t, cfg.BillingAgreementsEnabled)
}

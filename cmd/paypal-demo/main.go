// Command paypal-demo runs one checkout flow and one billing-agreement
// flow end to end against an in-process mock gateway, using an
// authentication session that approves immediately. No real transaction is
// created.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/wovenpay/paypal-switch/internal/analytics"
	"github.com/wovenpay/paypal-switch/internal/browserswitch"
	"github.com/wovenpay/paypal-switch/internal/config"
	"github.com/wovenpay/paypal-switch/internal/fingerprint"
	"github.com/wovenpay/paypal-switch/internal/gateway"
	"github.com/wovenpay/paypal-switch/internal/paypal"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Warn("no configuration in environment, using demo defaults")
		cfg = demoConfig()
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		logger.Error("failed to bind mock gateway", "error", err)
		os.Exit(1)
	}

	mock := gateway.NewMockGateway()
	server := &http.Server{Handler: mock.Router()}
	go server.Serve(listener)
	defer server.Close()

	cfg.Gateway.BaseURL = "http://" + listener.Addr().String()
	logger.Info("mock gateway listening", "addr", cfg.Gateway.BaseURL)

	client := gateway.NewClient(cfg.Gateway)
	configs := remoteconfig.NewFetcher(client, logger)

	analyticsClient := analytics.NewClient(&analytics.LogSink{Logger: logger}, cfg.Analytics, logger)
	analyticsCtx, stopAnalytics := context.WithCancel(context.Background())
	defer stopAnalytics()
	go analyticsClient.Start(analyticsCtx)

	session := &approvingSession{scheme: cfg.Switch.ReturnURLScheme, logger: logger}
	coordinator := browserswitch.NewCoordinator(
		browserswitch.Options{
			ReturnURLScheme:    cfg.Switch.ReturnURLScheme,
			BundleID:           cfg.Switch.BundleID,
			DisableAuthSession: cfg.Switch.DisableAuthSession,
		},
		session,
		nil,
		nil,
		browserswitch.NewBroadcaster(),
		logger,
	)

	events := coordinator.Events().Subscribe()
	go func() {
		for event := range events {
			logger.Info("app-switch event", "kind", event.Kind, "flow_id", event.FlowID, "strategy", event.Strategy)
		}
	}()

	completer := paypal.NewTokenizationCompleter(
		client,
		fingerprint.NewDeviceProvider(),
		gateway.Metadata{Source: cfg.Switch.Source, Integration: cfg.Switch.Integration, SessionID: "demo-session"},
		logger,
	)

	driver := paypal.NewDriver(
		client,
		configs,
		coordinator,
		paypal.NewParameterBuilder(cfg.Switch.ReturnURLScheme),
		paypal.NewApprovalResolver(),
		completer,
		analyticsClient,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runFlow(ctx, logger, "one-time payment", func(done paypal.CompletionFunc) error {
		_, err := driver.RequestOneTimePayment(ctx, &paypal.Request{
			Amount:     "12.00",
			Intent:     paypal.IntentAuthorize,
			UserAction: paypal.UserActionCommit,
		}, done)
		return err
	})

	runFlow(ctx, logger, "billing agreement", func(done paypal.CompletionFunc) error {
		_, err := driver.RequestBillingAgreement(ctx, &paypal.Request{
			BillingAgreementDescription: "Monthly subscription",
		}, done)
		return err
	})
}

func runFlow(ctx context.Context, logger *slog.Logger, name string, start func(paypal.CompletionFunc) error) {
	type outcome struct {
		nonce *paypal.AccountNonce
		err   error
	}
	results := make(chan outcome, 1)

	err := start(func(nonce *paypal.AccountNonce, err error) {
		results <- outcome{nonce: nonce, err: err}
	})
	if err != nil {
		logger.Error("flow rejected before launch", "flow", name, "error", err)
		return
	}

	select {
	case <-ctx.Done():
		logger.Error("flow timed out", "flow", name)
	case result := <-results:
		switch {
		case result.err != nil:
			logger.Error("flow failed", "flow", name, "error", result.err)
		case result.nonce == nil:
			logger.Info("flow canceled by user", "flow", name)
		default:
			logger.Info("flow succeeded", "flow", name, "nonce", result.nonce.Nonce, "payer_email", result.nonce.Email)
		}
	}
}

// approvingSession plays the part of the platform authentication session:
// it inspects the approval URL and immediately reports a success return.
type approvingSession struct {
	scheme string
	logger *slog.Logger
}

func (s *approvingSession) Start(approvalURL *url.URL, callbackScheme string, handler func(*url.URL, error)) bool {
	s.logger.Info("approval surface opened", "url", approvalURL.String())

	query := approvalURL.Query()
	returnQuery := url.Values{}
	if token := query.Get("token"); token != "" {
		returnQuery.Set("token", token)
		returnQuery.Set("PayerID", "FAKE-PAYER-ID")
	}
	if baToken := query.Get("ba_token"); baToken != "" {
		returnQuery.Set("ba_token", baToken)
	}

	returnURL, _ := url.Parse(fmt.Sprintf("%s://onetouch/v1/success?%s", s.scheme, returnQuery.Encode()))
	go handler(returnURL, nil)
	return true
}

func (s *approvingSession) Cancel() {}

func demoConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "demo"},
		Gateway: config.GatewayConfig{
			ConnTimeout: 5 * time.Second,
		},
		Switch: config.SwitchConfig{
			ReturnURLScheme: "com.wovenpay.demo.payments",
			BundleID:        "com.wovenpay.demo",
			Integration:     "custom",
			Source:          "paypal-app",
		},
		Logger: config.LoggerConfig{Level: "debug"},
	}
}

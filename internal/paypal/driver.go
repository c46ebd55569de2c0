package paypal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wovenpay/paypal-switch/internal/analytics"
	"github.com/wovenpay/paypal-switch/internal/browserswitch"
	"github.com/wovenpay/paypal-switch/internal/gateway"
	"github.com/wovenpay/paypal-switch/internal/remoteconfig"
)

// CompletionFunc receives the terminal outcome of a flow exactly once. A
// nil nonce with a nil error is a user cancellation.
type CompletionFunc func(nonce *AccountNonce, err error)

// Driver runs a full tokenization flow: merchant configuration check,
// hermes resource creation, browser switch, and the follow-up tokenization
// of the return payload.
//
// Errors detected before the browser switch launches are returned
// synchronously and the completion is never invoked. After a successful
// launch every terminal outcome arrives through the completion.
type Driver struct {
	client      gateway.Client
	configs     *remoteconfig.Fetcher
	coordinator *browserswitch.Coordinator
	builder     *ParameterBuilder
	resolver    *ApprovalResolver
	completer   *TokenizationCompleter
	analytics   *analytics.Client
	logger      *slog.Logger
}

func NewDriver(
	client gateway.Client,
	configs *remoteconfig.Fetcher,
	coordinator *browserswitch.Coordinator,
	builder *ParameterBuilder,
	resolver *ApprovalResolver,
	completer *TokenizationCompleter,
	analyticsClient *analytics.Client,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		client:      client,
		configs:     configs,
		coordinator: coordinator,
		builder:     builder,
		resolver:    resolver,
		completer:   completer,
		analytics:   analyticsClient,
		logger:      logger,
	}
}

// RequestOneTimePayment tokenizes a single checkout payment.
func (d *Driver) RequestOneTimePayment(ctx context.Context, req *Request, completion CompletionFunc) (*browserswitch.FlowHandle, error) {
	d.analytics.Send(analytics.EventPaymentSelected)
	return d.requestFlow(ctx, req, FlowOneTimePayment, completion)
}

// RequestBillingAgreement sets up a recurring billing agreement.
func (d *Driver) RequestBillingAgreement(ctx context.Context, req *Request, completion CompletionFunc) (*browserswitch.FlowHandle, error) {
	d.analytics.Send(analytics.EventBillingSelected)
	return d.requestFlow(ctx, req, FlowBillingAgreement, completion)
}

func (d *Driver) requestFlow(ctx context.Context, req *Request, kind FlowKind, completion CompletionFunc) (*browserswitch.FlowHandle, error) {
	if req == nil {
		return nil, NewInvalidRequestError("a request is required")
	}

	cfg, err := d.configs.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if !cfg.PayPalEnabled {
		d.analytics.Send(disabledEvent(kind))
		d.logger.Warn("PayPal is disabled for this merchant")
		return nil, NewDisabledError()
	}
	if kind == FlowBillingAgreement && !cfg.BillingAgreementsEnabled {
		d.analytics.Send(disabledEvent(kind))
		d.logger.Warn("billing agreements are disabled for this merchant")
		return nil, NewDisabledError()
	}

	params, err := d.builder.Build(req, cfg, kind == FlowBillingAgreement)
	if err != nil {
		return nil, err
	}

	var resp *gateway.HermesResponse
	if kind == FlowBillingAgreement {
		resp, err = d.client.SetupBillingAgreement(ctx, params)
	} else {
		resp, err = d.client.CreatePaymentResource(ctx, params)
	}
	if err != nil {
		d.logger.Error("hermes resource creation failed", "kind", kind, "error", err)
		return nil, err
	}

	approval, err := d.resolver.Resolve(resp, req, cfg)
	if err != nil {
		return nil, err
	}

	handle, err := d.coordinator.Launch(*approval, string(kind), d.switchCompletion(kind, req, approval.PairingToken, completion))
	if err != nil {
		return nil, mapLaunchError(err)
	}

	d.analytics.Send(startedEvent(kind))
	return handle, nil
}

// switchCompletion adapts a browser-switch resolution into the caller's
// completion. The return may arrive minutes after launch, so tokenization
// runs on a fresh context rather than the launch context.
func (d *Driver) switchCompletion(kind FlowKind, req *Request, pairingToken string, completion CompletionFunc) browserswitch.CompletionFunc {
	return func(ret *browserswitch.Return, err error) {
		if err != nil {
			d.analytics.Send(failedEvent(kind))
			if _, ok := browserswitch.IsValidationError(err); ok {
				completion(nil, NewUnexpectedResponseError(err))
				return
			}
			completion(nil, err)
			return
		}

		if ret == nil {
			if d.coordinator.Interrupted() {
				d.analytics.Send(analytics.EventSessionInterrupted)
			}
			d.analytics.Send(canceledEvent(kind))
			completion(nil, nil)
			return
		}

		nonce, err := d.completer.Complete(context.Background(), ret, kind, req, pairingToken)
		if err != nil {
			d.analytics.Send(failedEvent(kind))
			completion(nil, err)
			return
		}

		d.analytics.Send(succeededEvent(kind))
		completion(nonce, nil)
	}
}

func mapLaunchError(err error) error {
	var ownership *browserswitch.SchemeOwnershipError
	switch {
	case errors.Is(err, browserswitch.ErrNoReturnURLScheme):
		return NewReturnURLSchemeError("")
	case errors.As(err, &ownership):
		return NewReturnURLSchemeError(ownership.Scheme)
	default:
		return NewIntegrationError(err.Error())
	}
}

func disabledEvent(kind FlowKind) string {
	if kind == FlowBillingAgreement {
		return analytics.EventBillingDisabled
	}
	return analytics.EventPaymentDisabled
}

func startedEvent(kind FlowKind) string {
	if kind == FlowBillingAgreement {
		return analytics.EventBillingStarted
	}
	return analytics.EventPaymentStarted
}

func succeededEvent(kind FlowKind) string {
	if kind == FlowBillingAgreement {
		return analytics.EventBillingSucceeded
	}
	return analytics.EventPaymentSucceeded
}

func canceledEvent(kind FlowKind) string {
	if kind == FlowBillingAgreement {
		return analytics.EventBillingCanceled
	}
	return analytics.EventPaymentCanceled
}

func failedEvent(kind FlowKind) string {
	if kind == FlowBillingAgreement {
		return analytics.EventBillingFailed
	}
	return analytics.EventPaymentFailed
}

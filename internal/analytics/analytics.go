// Package analytics emits flow lifecycle events. Delivery is fire and
// forget: a failed or dropped event never affects a payment flow.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/wovenpay/paypal-switch/internal/config"
)

// Event kinds emitted by the PayPal flows.
const (
	EventPaymentSelected      = "paypal.single-payment.selected"
	EventPaymentStarted       = "paypal.single-payment.webswitch.started"
	EventPaymentSucceeded     = "paypal.single-payment.webswitch.succeeded"
	EventPaymentCanceled      = "paypal.single-payment.webswitch.canceled"
	EventPaymentFailed        = "paypal.single-payment.webswitch.failed"
	EventPaymentDisabled      = "paypal.single-payment.disabled"
	EventBillingSelected      = "paypal.billing-agreement.selected"
	EventBillingStarted       = "paypal.billing-agreement.webswitch.started"
	EventBillingSucceeded     = "paypal.billing-agreement.webswitch.succeeded"
	EventBillingCanceled      = "paypal.billing-agreement.webswitch.canceled"
	EventBillingFailed        = "paypal.billing-agreement.webswitch.failed"
	EventBillingDisabled      = "paypal.billing-agreement.disabled"
	EventWebSwitchReturned    = "paypal.webswitch.returned"
	EventSessionResumedNoFlow = "paypal.webswitch.resumed.no-pending-flow"
	EventSessionInterrupted   = "paypal.webswitch.resumed.interrupted"
)

type Event struct {
	Kind string
	At   time.Time
}

// Sink receives events. Implementations must not block for long; the
// dispatcher calls them one at a time.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// LogSink writes events to the process log. It is the default sink for the
// mock environment.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Deliver(ctx context.Context, event Event) error {
	s.Logger.Debug("analytics event", "kind", event.Kind, "at", event.At)
	return nil
}

type Client struct {
	sink   Sink
	logger *slog.Logger
	events chan Event
}

func NewClient(sink Sink, cfg config.AnalyticsConfig, logger *slog.Logger) *Client {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Client{
		sink:   sink,
		logger: logger,
		events: make(chan Event, bufferSize),
	}
}

// Send enqueues an event. When the buffer is full the event is dropped;
// analytics never backpressures a payment flow.
func (c *Client) Send(kind string) {
	event := Event{Kind: kind, At: time.Now()}
	select {
	case c.events <- event:
	default:
		c.logger.Warn("analytics buffer full, dropping event", "kind", kind)
	}
}

// Start drains the event buffer until the context is canceled.
func (c *Client) Start(ctx context.Context) {
	c.logger.Info("starting analytics dispatcher")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping analytics dispatcher")
			return
		case event := <-c.events:
			if err := c.sink.Deliver(ctx, event); err != nil {
				c.logger.Warn("analytics delivery failed", "kind", event.Kind, "error", err)
			}
		}
	}
}

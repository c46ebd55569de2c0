package analytics_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wovenpay/paypal-switch/internal/analytics"
	"github.com/wovenpay/paypal-switch/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSink struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (s *recordingSink) Deliver(ctx context.Context, event analytics.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]string, 0, len(s.events))
	for _, e := range s.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestClient_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	client := analytics.NewClient(sink, config.AnalyticsConfig{}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	client.Send(analytics.EventPaymentSelected)
	client.Send(analytics.EventPaymentStarted)
	client.Send(analytics.EventPaymentSucceeded)

	require.Eventually(t, func() bool {
		return len(sink.kinds()) == 3
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{
		analytics.EventPaymentSelected,
		analytics.EventPaymentStarted,
		analytics.EventPaymentSucceeded,
	}, sink.kinds())
}

func TestClient_SendNeverBlocks(t *testing.T) {
	sink := &recordingSink{}
	client := analytics.NewClient(sink, config.AnalyticsConfig{BufferSize: 2}, testLogger())

	// No dispatcher running: the buffer fills and further sends drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			client.Send(analytics.EventWebSwitchReturned)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full buffer")
	}
}

func TestClient_BufferedEventsSurviveLateStart(t *testing.T) {
	sink := &recordingSink{}
	client := analytics.NewClient(sink, config.AnalyticsConfig{}, testLogger())

	client.Send(analytics.EventBillingSelected)
	client.Send(analytics.EventBillingStarted)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	require.Eventually(t, func() bool {
		return len(sink.kinds()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestClient_StartStopsOnContextCancel(t *testing.T) {
	sink := &recordingSink{}
	client := analytics.NewClient(sink, config.AnalyticsConfig{}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		client.Start(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}

func TestEvent_CarriesTimestamp(t *testing.T) {
	sink := &recordingSink{}
	client := analytics.NewClient(sink, config.AnalyticsConfig{}, testLogger())

	before := time.Now()
	client.Send(analytics.EventPaymentSelected)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	require.Eventually(t, func() bool {
		return len(sink.kinds()) == 1
	}, time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	at := sink.events[0].At
	sink.mu.Unlock()
	assert.False(t, at.Before(before))
}

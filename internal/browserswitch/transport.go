package browserswitch

import (
	"errors"
	"net/url"
)

// Environment the approval URL points at.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentMock       Environment = "mock"
)

// ApprovalContext is everything a transport needs to send the user to the
// external approval surface. It is created once per submitted request and
// consumed by exactly one transport.
type ApprovalContext struct {
	ApprovalURL       *url.URL
	PairingToken      string
	ClientID          string
	Environment       Environment
	CallbackURLScheme string
}

// Transport-tag query parameter values, appended to the approval URL so
// the backend can distinguish the launch path in its logs. They are not
// interpreted on return.
const (
	transportTagParam       = "bt_int_type"
	transportTagEmbedded    = "1"
	transportTagAuthSession = "2"
)

// Strategy identifies which transport owns a launched flow.
type Strategy string

const (
	StrategyHandlerDelegated Strategy = "handler-delegated"
	StrategyEphemeralSession Strategy = "ephemeral-session"
	StrategyEmbeddedSurface  Strategy = "embedded-surface"
)

// AuthenticationSession is the platform's ephemeral web-authentication
// surface. Start reports whether the session could be launched; the
// handler receives the return URL, or ErrSessionCanceled when the user
// dismissed the surface.
type AuthenticationSession interface {
	Start(approvalURL *url.URL, callbackURLScheme string, handler func(returnURL *url.URL, err error)) bool
	Cancel()
}

// SurfacePresenter displays and dismisses an embedded browser surface on
// behalf of the coordinator.
type SurfacePresenter interface {
	Present(approvalURL *url.URL)
	Dismiss()
}

// ApprovalResult receives the outcome of a host-handled approval and feeds
// it back into the coordinator's dispatch path.
type ApprovalResult interface {
	CompleteWithURL(returnURL *url.URL)
	Cancel()
}

// ApprovalHandler lets the host application take over presentation of the
// approval surface entirely. The handler must eventually report the
// outcome on the supplied ApprovalResult.
type ApprovalHandler interface {
	HandleApproval(approval ApprovalContext, result ApprovalResult)
}

// Transport is one launch/cancel strategy. All three strategies converge
// on the coordinator's dispatch path for resolution.
type Transport interface {
	Strategy() Strategy
	Launch(approval ApprovalContext) error
	Cancel()
}

// handlerTransport delegates the whole approval round trip to the host.
type handlerTransport struct {
	coordinator *Coordinator
	handler     ApprovalHandler
}

func (t *handlerTransport) Strategy() Strategy { return StrategyHandlerDelegated }

func (t *handlerTransport) Launch(approval ApprovalContext) error {
	t.handler.HandleApproval(approval, &approvalResult{coordinator: t.coordinator})
	return nil
}

func (t *handlerTransport) Cancel() {}

// approvalResult re-enters the coordinator exactly as an OS-delivered
// return would.
type approvalResult struct {
	coordinator *Coordinator
}

func (r *approvalResult) CompleteWithURL(returnURL *url.URL) {
	r.coordinator.DispatchReturn(returnURL)
}

func (r *approvalResult) Cancel() {
	r.coordinator.DispatchReturn(FinishedURL())
}

// sessionTransport launches the ephemeral authentication session.
type sessionTransport struct {
	coordinator *Coordinator
	session     AuthenticationSession
}

func (t *sessionTransport) Strategy() Strategy { return StrategyEphemeralSession }

func (t *sessionTransport) Launch(approval ApprovalContext) error {
	tagged := appendQueryParam(approval.ApprovalURL, transportTagParam, transportTagAuthSession)

	started := t.session.Start(tagged, approval.CallbackURLScheme, func(returnURL *url.URL, err error) {
		if err != nil {
			if errors.Is(err, ErrSessionCanceled) {
				t.coordinator.logger.Debug("authentication session canceled by user")
			} else {
				// Absorbed as a cancellation for the caller, but logged
				// distinctly so real session failures stay diagnosable.
				t.coordinator.logger.Error("authentication session failed, treating as cancellation", "error", err)
			}
			t.coordinator.DispatchReturn(FinishedURL())
			return
		}
		t.coordinator.DispatchReturn(returnURL)
	})
	if !started {
		t.coordinator.logger.Error("authentication session failed to start")
	}
	t.coordinator.noteSessionStarted(started)
	return nil
}

func (t *sessionTransport) Cancel() {
	t.session.Cancel()
}

// surfaceTransport asks the host to present an embedded browser surface.
type surfaceTransport struct {
	coordinator *Coordinator
	presenter   SurfacePresenter
}

func (t *surfaceTransport) Strategy() Strategy { return StrategyEmbeddedSurface }

func (t *surfaceTransport) Launch(approval ApprovalContext) error {
	if t.presenter == nil {
		// Misconfiguration is logged rather than resolved through the
		// completion; the flow stays pending.
		t.coordinator.logger.Error("no surface presenter configured, unable to present approval surface")
		return nil
	}
	tagged := appendQueryParam(approval.ApprovalURL, transportTagParam, transportTagEmbedded)
	t.presenter.Present(tagged)
	return nil
}

func (t *surfaceTransport) Cancel() {
	if t.presenter == nil {
		t.coordinator.logger.Error("no surface presenter configured, unable to dismiss approval surface")
		return
	}
	t.presenter.Dismiss()
}

// appendQueryParam appends key=value to a URL, preserving any existing
// query string. The original URL is not mutated.
func appendQueryParam(u *url.URL, key, value string) *url.URL {
	tagged := *u
	if tagged.RawQuery == "" {
		tagged.RawQuery = key + "=" + value
	} else {
		tagged.RawQuery = tagged.RawQuery + "&" + key + "=" + value
	}
	return &tagged
}

// Package browserswitch coordinates the round trip through an external
// authentication surface: it launches one transport strategy for an
// approval URL, owns the single pending completion, and drives the
// eventual return (or a synthetic cancellation) to exactly one resolution.
package browserswitch

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// finishedURLString is the sentinel dispatched when the external surface
// finished without producing a return URL. It is recognized before any
// validation and resolves the pending flow as a user cancellation.
const finishedURLString = "paypal-flow://finished"

// FinishedURL returns the sentinel "finished without a URL" value.
func FinishedURL() *url.URL {
	u, _ := url.Parse(finishedURLString)
	return u
}

// State of the coordinator. Every dispatch, including error and cancel
// outcomes, returns the coordinator to StateIdle.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingApproval State = "awaiting-approval"
	StateDispatching      State = "dispatching"
)

// CompletionFunc receives the terminal outcome of a flow. A nil Return
// with a nil error is a user cancellation, distinguished from failure.
type CompletionFunc func(ret *Return, err error)

// FlowHandle identifies a launched flow. The coordinator resolves returns
// against whichever flow holds the pending slot; the handle lets callers
// and tests observe which launch that was.
type FlowHandle struct {
	ID   string
	Kind string
}

// pendingReturn is the single outstanding continuation. At most one exists
// at any time; launching a new flow replaces a still-outstanding one and
// the replaced completion is never invoked.
type pendingReturn struct {
	handle    *FlowHandle
	transport Transport
	complete  CompletionFunc
}

// Options configures a Coordinator.
type Options struct {
	// ReturnURLScheme is the callback scheme registered by the host
	// application; return and cancel URLs are built under it.
	ReturnURLScheme string
	// BundleID is the host application identifier the scheme must belong to.
	BundleID string
	// DisableAuthSession forces the embedded surface transport even when an
	// authentication session collaborator is available.
	DisableAuthSession bool
	// AllowedSources extends the set of source surfaces an inbound return
	// may originate from.
	AllowedSources []string
}

// Default source surfaces a return is accepted from: the platform browser
// and the authentication-session host.
var defaultAllowedSources = []string{
	"com.apple.mobilesafari",
	"com.apple.safariviewservice",
}

type Coordinator struct {
	scheme             string
	bundleID           string
	disableAuthSession bool
	allowedSources     map[string]struct{}

	session   AuthenticationSession
	presenter SurfacePresenter
	handler   ApprovalHandler

	events *Broadcaster
	logger *slog.Logger

	mu             sync.Mutex
	state          State
	pending        *pendingReturn
	sessionStarted bool
	interrupted    bool
}

func NewCoordinator(
	opts Options,
	session AuthenticationSession,
	presenter SurfacePresenter,
	handler ApprovalHandler,
	events *Broadcaster,
	logger *slog.Logger,
) *Coordinator {
	allowed := make(map[string]struct{})
	for _, source := range defaultAllowedSources {
		allowed[strings.ToLower(source)] = struct{}{}
	}
	for _, source := range opts.AllowedSources {
		allowed[strings.ToLower(source)] = struct{}{}
	}

	if events == nil {
		events = NewBroadcaster()
	}

	return &Coordinator{
		scheme:             opts.ReturnURLScheme,
		bundleID:           opts.BundleID,
		disableAuthSession: opts.DisableAuthSession,
		allowedSources:     allowed,
		session:            session,
		presenter:          presenter,
		handler:            handler,
		events:             events,
		logger:             logger,
		state:              StateIdle,
	}
}

// Events exposes the lifecycle broadcaster for subscribers.
func (c *Coordinator) Events() *Broadcaster {
	return c.events
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionStarted reports whether the ephemeral authentication session was
// started for the current flow.
func (c *Coordinator) SessionStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionStarted
}

func (c *Coordinator) noteSessionStarted(started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionStarted = started
}

// NoteForegrounded records the host process returning to the foreground.
// With a flow still pending this implies the user may have abandoned the
// external surface; the flag only disambiguates analytics outcomes and
// never forces a resolution. Reports whether a flow was pending.
func (c *Coordinator) NoteForegrounded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return false
	}
	c.interrupted = true
	return true
}

// Interrupted reports whether the current pending flow saw the host
// foregrounded without a return.
func (c *Coordinator) Interrupted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interrupted
}

// Launch validates the callback scheme, selects exactly one transport and
// stores the flow's completion in the pending slot. A flow launched while
// another is pending replaces it; the replaced completion is never
// invoked. There is no timeout: the flow stays pending until a return is
// dispatched or another launch replaces it.
func (c *Coordinator) Launch(approval ApprovalContext, kind string, completion CompletionFunc) (*FlowHandle, error) {
	if c.scheme == "" {
		return nil, ErrNoReturnURLScheme
	}
	if !schemeMatchesBundle(c.scheme, c.bundleID) {
		return nil, &SchemeOwnershipError{Scheme: c.scheme, BundleID: c.bundleID}
	}

	approval.CallbackURLScheme = c.scheme

	handle := &FlowHandle{
		ID:   uuid.New().String(),
		Kind: kind,
	}
	transport := c.selectTransport()

	c.mu.Lock()
	if c.pending != nil {
		c.logger.Warn("replacing pending flow",
			"replaced_flow_id", c.pending.handle.ID,
			"flow_id", handle.ID,
		)
	}
	c.pending = &pendingReturn{
		handle:    handle,
		transport: transport,
		complete:  completion,
	}
	c.state = StateAwaitingApproval
	c.sessionStarted = false
	c.interrupted = false
	c.mu.Unlock()

	c.events.Publish(Event{Kind: EventWillSwitch, FlowID: handle.ID, Strategy: transport.Strategy()})

	c.logger.Info("launching browser switch",
		"flow_id", handle.ID,
		"kind", kind,
		"strategy", transport.Strategy(),
		"pairing_token", approval.PairingToken,
	)

	if err := transport.Launch(approval); err != nil {
		return nil, err
	}

	c.events.Publish(Event{Kind: EventDidSwitch, FlowID: handle.ID, Strategy: transport.Strategy()})

	return handle, nil
}

func (c *Coordinator) selectTransport() Transport {
	if c.handler != nil {
		return &handlerTransport{coordinator: c, handler: c.handler}
	}
	if c.disableAuthSession || c.session == nil {
		return &surfaceTransport{coordinator: c, presenter: c.presenter}
	}
	return &sessionTransport{coordinator: c, session: c.session}
}

// HandleOpenURL is the entry point for OS-delivered "app reopened" URLs.
// An inbound return is only eligible when a flow is pending, the source
// surface is recognized, and the URL passes structural validation (or is
// the finished sentinel). Reports whether the URL was dispatched.
func (c *Coordinator) HandleOpenURL(u *url.URL, sourceApplication string) bool {
	if !c.CanHandleOpenURL(u, sourceApplication) {
		return false
	}
	return c.DispatchReturn(u)
}

// CanHandleOpenURL is the acceptance gate guarding against an unrelated
// external URL open being misinterpreted as a payment return.
func (c *Coordinator) CanHandleOpenURL(u *url.URL, sourceApplication string) bool {
	c.mu.Lock()
	pending := c.pending != nil
	c.mu.Unlock()
	if !pending || u == nil {
		return false
	}

	if _, ok := c.allowedSources[strings.ToLower(sourceApplication)]; !ok {
		return false
	}

	if u.String() == finishedURLString {
		return true
	}
	_, err := ValidateReturnURL(u)
	return err == nil
}

// DispatchReturn resolves the pending flow against an inbound URL. It is
// the single convergence point for all three transports. With no pending
// flow it is a no-op; once a flow is dispatched, a second dispatch with
// any URL does not re-invoke its completion.
func (c *Coordinator) DispatchReturn(u *url.URL) bool {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		c.logger.Debug("ignoring return with no pending flow")
		return false
	}
	pending := c.pending
	c.pending = nil
	c.state = StateDispatching
	c.mu.Unlock()

	c.events.Publish(Event{
		Kind:     EventWillProcessReturn,
		FlowID:   pending.handle.ID,
		Strategy: pending.transport.Strategy(),
	})

	if pending.transport.Strategy() == StrategyEmbeddedSurface {
		pending.transport.Cancel()
	}

	switch {
	case u != nil && u.String() == finishedURLString:
		c.logger.Info("flow finished without a return URL, treating as cancellation", "flow_id", pending.handle.ID)
		pending.complete(nil, nil)

	default:
		ret, err := ValidateReturnURL(u)
		switch {
		case err != nil:
			c.logger.Warn("return URL failed validation", "flow_id", pending.handle.ID, "error", err)
			pending.complete(nil, err)
		case ret.Action == ActionCancel:
			c.logger.Info("user canceled on the approval surface", "flow_id", pending.handle.ID)
			pending.complete(nil, nil)
		default:
			pending.complete(ret, nil)
		}
	}

	c.mu.Lock()
	// A completion may have launched a new flow synchronously; only return
	// to idle when the slot is still empty.
	if c.pending == nil {
		c.state = StateIdle
	}
	c.mu.Unlock()
	return true
}

// schemeMatchesBundle checks that the callback scheme plausibly belongs to
// the host application: it must begin with the bundle identifier,
// tolerating an identifier with a leading non-alphanumeric rune.
func schemeMatchesBundle(scheme, bundleID string) bool {
	s := strings.ToLower(scheme)
	b := strings.ToLower(bundleID)

	if b != "" {
		first := []rune(b)[0]
		if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
			b = string([]rune(b)[1:])
		}
	}
	if b == "" {
		return false
	}
	return strings.HasPrefix(s, b)
}

package browserswitch

import "sync"

// EventKind is an app-switch lifecycle notification.
type EventKind string

const (
	// EventWillSwitch fires just before a transport hands control to the
	// external surface.
	EventWillSwitch EventKind = "will-switch"
	// EventDidSwitch fires once the external surface has been launched.
	EventDidSwitch EventKind = "did-switch"
	// EventWillProcessReturn fires when a return is dispatched, before any
	// validation of the returned URL.
	EventWillProcessReturn EventKind = "will-process-return"
)

type Event struct {
	Kind     EventKind
	FlowID   string
	Strategy Strategy
}

// Broadcaster fans lifecycle events out to zero or more subscribers.
// Delivery is best effort: a subscriber that stops draining its channel
// misses events rather than blocking dispatch.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe returns a channel receiving all future events.
func (b *Broadcaster) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16)
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Package netstatus tracks connectivity and exposes the last known state to
// the data-access layer. Detection is best-effort: when no connectivity
// source is available the tracker fails open and assumes online, letting the
// actual request surface the real failure.
package netstatus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tailorly/seam/internal/metrics"
)

// Reachability is a three-valued internet-reachable flag. Platform sources
// often know link state before they know whether the internet is reachable.
type Reachability int

const (
	ReachabilityUnknown Reachability = iota
	ReachabilityYes
	ReachabilityNo
)

// State is the process-wide connectivity snapshot, replaced wholesale on
// every change event.
type State struct {
	Connected bool
	Reachable Reachability
	Kind      string // e.g. "wifi", "cellular", "none"
}

// Online reports whether requests should be attempted given this state.
func (s State) Online() bool {
	return s.Connected && s.Reachable != ReachabilityNo
}

// Source feeds connectivity change events to the tracker. The returned
// channel is closed when the source shuts down.
type Source interface {
	States(ctx context.Context) (<-chan State, error)
}

// Tracker holds the last known connectivity state and notifies subscribers
// on changes.
type Tracker struct {
	source Source

	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// New creates a tracker. A nil source degrades to assume-online: startup
// must never fail because connectivity detection is not wired up.
func New(source Source) *Tracker {
	t := &Tracker{
		source: source,
		state:  State{Connected: true, Reachable: ReachabilityUnknown, Kind: "unknown"},
		subs:   make(map[int]func(State)),
	}
	metrics.NetworkOnline.Set(1)
	return t
}

// Start begins consuming connectivity events until ctx is cancelled. It
// returns immediately; event handling runs in a goroutine. Errors from the
// source are logged, not propagated, and leave the tracker in its fail-open
// default.
func (t *Tracker) Start(ctx context.Context) {
	if t.source == nil {
		slog.Debug("No connectivity source configured, assuming online")
		return
	}

	states, err := t.source.States(ctx)
	if err != nil {
		slog.Warn("Connectivity source unavailable, assuming online", "error", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-states:
				if !ok {
					return
				}
				t.update(s)
			}
		}
	}()
}

// Online synchronously returns the last known connectivity verdict.
func (t *Tracker) Online() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Online()
}

// State returns a copy of the last known state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Subscribe registers fn to run on every state change and returns an
// unsubscribe function.
func (t *Tracker) Subscribe(fn func(State)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) update(s State) {
	t.mu.Lock()
	prev := t.state
	t.state = s
	listeners := make([]func(State), 0, len(t.subs))
	for _, fn := range t.subs {
		listeners = append(listeners, fn)
	}
	t.mu.Unlock()

	if prev.Online() != s.Online() {
		slog.Info("Network state changed",
			"online", s.Online(), "kind", s.Kind, "connected", s.Connected)
	}
	if s.Online() {
		metrics.NetworkOnline.Set(1)
	} else {
		metrics.NetworkOnline.Set(0)
	}

	for _, fn := range listeners {
		fn(s)
	}
}

package netstatus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	ch  chan State
	err error
}

func (f *fakeSource) States(ctx context.Context) (<-chan State, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestTrackerDefaultsToOnline(t *testing.T) {
	tr := New(nil)
	tr.Start(context.Background())

	if !tr.Online() {
		t.Error("tracker without a source must assume online")
	}
}

func TestTrackerFailsOpenOnSourceError(t *testing.T) {
	tr := New(&fakeSource{err: errors.New("connectivity API unavailable")})
	tr.Start(context.Background())

	if !tr.Online() {
		t.Error("tracker must assume online when the source fails")
	}
}

func TestTrackerFollowsSourceEvents(t *testing.T) {
	src := &fakeSource{ch: make(chan State, 1)}
	tr := New(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr.Start(ctx)

	src.ch <- State{Connected: false, Reachable: ReachabilityNo, Kind: "none"}
	waitFor(t, func() bool { return !tr.Online() })

	src.ch <- State{Connected: true, Reachable: ReachabilityYes, Kind: "wifi"}
	waitFor(t, func() bool { return tr.Online() })

	if got := tr.State().Kind; got != "wifi" {
		t.Errorf("Kind = %q, want wifi", got)
	}
}

func TestTrackerNotifiesSubscribers(t *testing.T) {
	src := &fakeSource{ch: make(chan State, 1)}
	tr := New(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr.Start(ctx)

	var mu sync.Mutex
	var seen []State
	unsub := tr.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	src.ch <- State{Connected: false, Reachable: ReachabilityNo, Kind: "none"}
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	})

	unsub()
	src.ch <- State{Connected: true, Reachable: ReachabilityYes, Kind: "wifi"}
	waitFor(t, func() bool { return tr.Online() })

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Errorf("subscriber called %d times after unsubscribe, want 1", len(seen))
	}
}

func TestStateOnline(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{State{Connected: true, Reachable: ReachabilityYes}, true},
		{State{Connected: true, Reachable: ReachabilityUnknown}, true},
		{State{Connected: true, Reachable: ReachabilityNo}, false},
		{State{Connected: false, Reachable: ReachabilityYes}, false},
	}

	for _, tt := range tests {
		if got := tt.state.Online(); got != tt.want {
			t.Errorf("Online(%+v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

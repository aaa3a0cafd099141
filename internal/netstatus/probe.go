package netstatus

import (
	"context"
	"net/http"
	"time"
)

// ProbeConfig holds settings for the HTTP reachability probe.
type ProbeConfig struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

// ProbeSource detects connectivity by periodically issuing a HEAD request
// against a known endpoint. It only emits on state transitions.
type ProbeSource struct {
	cfg        ProbeConfig
	httpClient *http.Client
}

// NewProbeSource creates an HTTP probe source.
func NewProbeSource(cfg ProbeConfig) *ProbeSource {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &ProbeSource{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// States starts the probe loop and returns its event channel.
func (p *ProbeSource) States(ctx context.Context) (<-chan State, error) {
	out := make(chan State, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(p.cfg.Interval)
		defer ticker.Stop()

		var last *State
		for {
			s := p.check(ctx)
			if last == nil || *last != s {
				last = &s
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out, nil
}

func (p *ProbeSource) check(ctx context.Context) State {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.cfg.URL, nil)
	if err != nil {
		return State{Connected: false, Reachable: ReachabilityNo, Kind: "none"}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return State{Connected: false, Reachable: ReachabilityNo, Kind: "none"}
	}
	resp.Body.Close()

	return State{Connected: true, Reachable: ReachabilityYes, Kind: "probe"}
}

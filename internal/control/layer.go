// Package control wires the data-access layer together: transport, cache
// backend, network tracker and one resource client per resource type. The UI
// consumes the layer through the resource clients it exposes.
package control

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tailorly/seam/internal/api"
	"github.com/tailorly/seam/internal/cache"
	"github.com/tailorly/seam/internal/core/config"
	"github.com/tailorly/seam/internal/core/domain"
	"github.com/tailorly/seam/internal/netstatus"
	"github.com/tailorly/seam/internal/resource"
)

// Layer is the assembled data-access layer.
type Layer struct {
	Customers             *resource.Customers
	Bills                 *resource.Client[domain.Bill]
	MeasurementConfigs    *resource.Client[domain.MeasurementConfig]
	BillingConfigItems    *resource.Client[domain.BillingConfigItem]
	ReceivedItemTemplates *resource.Client[domain.ReceivedItemTemplate]

	tracker *netstatus.Tracker
	store   cache.Store
	cancel  context.CancelFunc
}

// New creates a Layer with all dependencies initialized from configuration.
func New(cfg *config.AppConfig) (*Layer, error) {
	store, err := newCacheStore(cfg.Cache)
	if err != nil {
		return nil, err
	}

	var source netstatus.Source
	if cfg.Network.Probe.URL != "" {
		source = netstatus.NewProbeSource(netstatus.ProbeConfig{
			URL:      cfg.Network.Probe.URL,
			Interval: cfg.Network.Probe.Interval.Std(),
			Timeout:  cfg.Network.Probe.Timeout.Std(),
		})
	}
	tracker := netstatus.New(source)

	deps := resource.Deps{
		API: api.NewClient(api.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout.Std(),
		}),
		Cache: store,
		Net:   tracker,
		Retry: api.RetryConfig{
			MaxAttempts: cfg.Retry.MaxAttempts,
			Delay:       cfg.Retry.Delay.Std(),
		},
	}

	return &Layer{
		Customers:             resource.NewCustomers(deps),
		Bills:                 resource.NewBills(deps),
		MeasurementConfigs:    resource.NewMeasurementConfigs(deps),
		BillingConfigItems:    resource.NewBillingConfigItems(deps),
		ReceivedItemTemplates: resource.NewReceivedItemTemplates(deps),
		tracker:               tracker,
		store:                 store,
	}, nil
}

func newCacheStore(cfg config.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		slog.Info("Using in-memory cache store")
		return cache.NewMemoryStore(), nil
	case "sqlite":
		slog.Info("Using SQLite cache store", "path", cfg.SQLite.Path)
		return cache.NewSQLiteStore(context.Background(), cfg.SQLite)
	case "redis":
		slog.Info("Using Redis cache store")
		return cache.NewRedisStore(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Start begins connectivity tracking.
func (l *Layer) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.tracker.Start(ctx)
}

// Stop shuts down connectivity tracking and closes the cache backend.
func (l *Layer) Stop() error {
	if l.cancel != nil {
		l.cancel()
	}
	if closer, ok := l.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Network exposes the connectivity tracker, e.g. for UI online indicators.
func (l *Layer) Network() *netstatus.Tracker {
	return l.tracker
}

// ClearCache wipes the entire cache store (user-triggered reset).
func (l *Layer) ClearCache(ctx context.Context) error {
	return l.store.Clear(ctx)
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/aggregation"
	"github.com/cost-guardian/dashboard/pkg/metrics"
	"github.com/cost-guardian/dashboard/pkg/publish"
	"github.com/cost-guardian/dashboard/pkg/services/config"
	"github.com/cost-guardian/dashboard/pkg/services/export"
	"github.com/cost-guardian/dashboard/pkg/services/query"
	"github.com/cost-guardian/dashboard/pkg/services/registry"
	"github.com/cost-guardian/dashboard/pkg/store"
)

// App holds the services of one process.
type App struct {
	Config   *config.Config
	Query    *query.Service
	Exporter *export.Exporter
	Metrics  *metrics.Metrics
}

type Options struct {
	// Registerer receives the collectors. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Now overrides the clock.
	Now        func() time.Time
	Stores     *registry.Registry[store.RecordStore]
	Publishers *registry.Registry[publish.Publisher]
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Stores == nil {
		opts.Stores = registry.Stores()
	}
	if opts.Publishers == nil {
		opts.Publishers = registry.Publishers()
	}

	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}
	engine := aggregation.NewEngine(aggregation.Settings{
		Location:      loc,
		Now:           opts.Now,
		DefaultRegion: cfg.DefaultRegion,
	})
	m := metrics.New(opts.Registerer)

	records, err := opts.Stores.Create(ctx, cfg.Store.Backend, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}
	publisher, err := opts.Publishers.Create(ctx, cfg.Publisher.Backend, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	querySvc, err := query.NewService(records, engine, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create query service: %w", err)
	}
	exporter, err := export.NewExporter(export.Dependencies{
		Records:   records,
		Engine:    engine,
		Publisher: publisher,
		Metrics:   m,
	}, publish.Target{Path: cfg.Publisher.Path, Branch: cfg.Publisher.Branch})
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("store", cfg.Store.Backend).
		Str("publisher", cfg.Publisher.Backend).
		Str("location", loc.String()).
		Msg("services ready")

	return &App{Config: cfg, Query: querySvc, Exporter: exporter, Metrics: m}, nil
}

// Load reads the configuration at path (empty for environment only) and builds the App.
func Load(ctx context.Context, path string, opts Options) (*App, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, opts)
}

package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/adapters"
	"github.com/cost-guardian/dashboard/pkg/aggregation"
	"github.com/cost-guardian/dashboard/pkg/metrics"
	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
	modelstore "github.com/cost-guardian/dashboard/pkg/models/store"
	"github.com/cost-guardian/dashboard/pkg/publish"
	"github.com/cost-guardian/dashboard/pkg/store"
)

const (
	successMessage      = "Data exported successfully"
	commitMessageLayout = "2006-01-02 15:04:05"
)

type Dependencies struct {
	Records   store.RecordStore
	Engine    *aggregation.Engine
	Publisher publish.Publisher
	Metrics   *metrics.Metrics
}

// Exporter rebuilds the dashboard snapshot from the full event log and
// publishes it over the previous revision.
type Exporter struct {
	records   store.RecordStore
	engine    *aggregation.Engine
	publisher publish.Publisher
	metrics   *metrics.Metrics
	target    publish.Target
}

func NewExporter(deps Dependencies, target publish.Target) (*Exporter, error) {
	if deps.Records == nil {
		return nil, errors.New("record store is nil")
	}
	if deps.Engine == nil {
		return nil, errors.New("aggregation engine is nil")
	}
	if deps.Publisher == nil {
		return nil, errors.New("publisher is nil")
	}
	if target.Path == "" {
		return nil, errors.New("target path is required")
	}
	return &Exporter{
		records:   deps.Records,
		engine:    deps.Engine,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		target:    target,
	}, nil
}

// Run performs one export. Any failing step aborts the run; nothing is retried.
func (x *Exporter) Run(ctx context.Context) (*domain.ExportStats, error) {
	logger := zerolog.Ctx(ctx).With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	started := time.Now()
	stats, err := x.run(ctx)
	elapsed := time.Since(started)

	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("export failed")
		x.metrics.RecordExport(metrics.ResultFailure, elapsed.Seconds())
		return nil, err
	}

	logger.Info().
		Int("total_resources", stats.TotalResources).
		Str("monthly_savings", stats.MonthlySavings.StringFixed(2)).
		Dur("elapsed", elapsed).
		Msg("export completed")
	x.metrics.RecordExport(metrics.ResultSuccess, elapsed.Seconds())
	return stats, nil
}

func (x *Exporter) run(ctx context.Context) (*domain.ExportStats, error) {
	logger := zerolog.Ctx(ctx)

	items, err := x.records.Scan(ctx, modelstore.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	logger.Info().Int("log_entries", len(items)).Msg("records fetched")

	events := adapters.MapStoreItemsToDomainEvents(items, x.engine.Location())
	snapshot := x.engine.Snapshot(events)

	if err := Validate(snapshot); err != nil {
		return nil, err
	}

	content, err := json.MarshalIndent(adapters.MapSnapshotDomainToApi(snapshot), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	revision, found, err := x.publisher.Revision(ctx, x.target)
	if err != nil {
		return nil, fmt.Errorf("failed to read current revision: %w", err)
	}
	if !found {
		logger.Info().Str("path", x.target.Path).Msg("no previous snapshot, creating")
	}

	message := fmt.Sprintf("Update dashboard data - %s UTC",
		snapshot.Metadata.LastUpdated.UTC().Format(commitMessageLayout))
	if _, err := x.publisher.Write(ctx, x.target, content, message, revision); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	x.metrics.SetSnapshotResources(snapshot.Metadata.UniqueResources)

	return &domain.ExportStats{
		TotalResources: snapshot.Overview.TotalResources,
		MonthlySavings: snapshot.Overview.MonthlySavings,
		LastUpdated:    snapshot.Metadata.LastUpdated,
	}, nil
}

// Handle wraps Run in the invocation envelope.
func (x *Exporter) Handle(ctx context.Context) api.ExportResult {
	stats, err := x.Run(ctx)
	if err != nil {
		return api.ExportResult{
			Status: http.StatusInternalServerError,
			Error:  "Error: " + err.Error(),
		}
	}

	apiStats := adapters.MapExportStatsDomainToApi(*stats)
	return api.ExportResult{
		Status:  http.StatusOK,
		Message: successMessage,
		Stats:   &apiStats,
	}
}

package workflow

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/models/api"
)

type Exporter interface {
	Handle(ctx context.Context) api.ExportResult
}

// Runner repeats exporter runs on a fixed interval until its context ends.
// Runs never overlap.
type Runner struct {
	exporter Exporter
	config   RunnerConfig
	done     chan struct{}
	progress chan RunnerProgress
}

type RunnerConfig struct {
	Interval time.Duration
	// RunOnStart triggers one export before the first tick.
	RunOnStart bool
}

type RunnerProgress struct {
	Runs       int64
	Failures   int64
	LastRunAt  time.Time
	LastResult api.ExportResult
}

func NewRunner(exporter Exporter, config RunnerConfig) (*Runner, error) {
	if exporter == nil {
		return nil, errors.New("exporter is nil")
	}
	if config.Interval <= 0 {
		return nil, errors.New("export interval must be positive")
	}
	return &Runner{
		exporter: exporter,
		config:   config,
		done:     make(chan struct{}),
		progress: make(chan RunnerProgress, 100),
	}, nil
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress emits the cumulative state after every run. Updates are dropped
// while the buffer is full.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "export_runner").Logger()
	ctx = logger.WithContext(ctx)
	defer close(r.done)
	defer close(r.progress)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	var state RunnerProgress
	runOnce := func() {
		result := r.exporter.Handle(ctx)
		state.Runs++
		if result.Status != http.StatusOK {
			state.Failures++
			logger.Warn().Str("error", result.Error).Msg("scheduled export failed")
		}
		state.LastRunAt = time.Now()
		state.LastResult = result

		select {
		case r.progress <- state:
		default:
		}
	}

	logger.Info().Dur("interval", r.config.Interval).Msg("export schedule started")
	if r.config.RunOnStart {
		runOnce()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info().Int64("runs", state.Runs).Msg("export schedule stopped")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

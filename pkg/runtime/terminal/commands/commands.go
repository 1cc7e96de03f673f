package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/cost-guardian/dashboard/pkg/services/query"
)

type Exporter interface {
	Handle(ctx context.Context) api.ExportResult
}

type Querier interface {
	Handle(ctx context.Context, view, date string) query.Response
	Report(ctx context.Context, view, date string) (*domain.Report, error)
}

type Services struct {
	Query    Querier
	Exporter Exporter
}

// ServiceFactory builds the services from a config file path (may be empty).
type ServiceFactory func(ctx context.Context, configPath string) (*Services, error)

type servicesFunc func(cmd *cobra.Command) (*Services, error)

type ReportHandler interface {
	Handle(report *domain.Report) error
}

type DocumentHandler interface {
	Handle(doc any) error
}

package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/adapters"
	"github.com/cost-guardian/dashboard/pkg/aggregation"
	"github.com/cost-guardian/dashboard/pkg/metrics"
	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
	modelstore "github.com/cost-guardian/dashboard/pkg/models/store"
	"github.com/cost-guardian/dashboard/pkg/store"
)

const invalidViewMessage = "Invalid view parameter"

// Response is a transport-neutral envelope: Status is an HTTP status code
// and Body is JSON-serializable.
type Response struct {
	Status int
	Body   any
}

type Service struct {
	records store.RecordStore
	engine  *aggregation.Engine
	metrics *metrics.Metrics
}

func NewService(records store.RecordStore, engine *aggregation.Engine, m *metrics.Metrics) (*Service, error) {
	if records == nil {
		return nil, errors.New("record store is nil")
	}
	if engine == nil {
		return nil, errors.New("aggregation engine is nil")
	}
	return &Service{records: records, engine: engine, metrics: m}, nil
}

// ErrInvalidView is returned for a view other than daily, weekly or monthly.
var ErrInvalidView = errors.New("invalid view parameter")

type request struct {
	view   domain.View
	date   time.Time
	events []domain.Event
}

// Handle serves one view request. An empty view means daily; an empty or
// unparsable date means today.
func (s *Service) Handle(ctx context.Context, rawView, rawDate string) Response {
	req, err := s.prepare(ctx, rawView, rawDate)
	if err != nil {
		s.metrics.RecordQuery("invalid", http.StatusBadRequest)
		return Response{
			Status: http.StatusBadRequest,
			Body:   api.ErrorResponse{Error: invalidViewMessage},
		}
	}

	var body any
	switch req.view {
	case domain.ViewWeekly:
		body = adapters.MapWeeklyViewDomainToApi(s.engine.WeeklyResourceCounts(req.date, req.events))
	case domain.ViewMonthly:
		body = adapters.MapMonthlyViewDomainToApi(s.engine.MonthlyResourceCounts(req.date, req.events))
	default:
		body = adapters.MapDailyViewDomainToApi(s.engine.DailyDeletedResources(req.date, req.events))
	}

	s.metrics.RecordQuery(string(req.view), http.StatusOK)
	return Response{Status: http.StatusOK, Body: body}
}

// Report builds the same view as Handle for the terminal reporter.
func (s *Service) Report(ctx context.Context, rawView, rawDate string) (*domain.Report, error) {
	req, err := s.prepare(ctx, rawView, rawDate)
	if err != nil {
		return nil, err
	}

	switch req.view {
	case domain.ViewWeekly:
		return adapters.MapWeeklyViewDomainToReport(s.engine.WeeklyResourceCounts(req.date, req.events)), nil
	case domain.ViewMonthly:
		return adapters.MapMonthlyViewDomainToReport(s.engine.MonthlyResourceCounts(req.date, req.events)), nil
	default:
		return adapters.MapDailyViewDomainToReport(s.engine.DailyDeletedResources(req.date, req.events)), nil
	}
}

// prepare resolves the view and date and loads the terminal events of the
// view window. Store failures are logged and yield no events.
func (s *Service) prepare(ctx context.Context, rawView, rawDate string) (request, error) {
	logger := zerolog.Ctx(ctx)

	view := domain.View(rawView)
	if rawView == "" {
		view = domain.ViewDaily
	}
	if !view.Valid() {
		logger.Warn().Str("view", rawView).Msg("rejected unknown view")
		return request{}, fmt.Errorf("%w: %q", ErrInvalidView, rawView)
	}

	loc := s.engine.Location()
	date, ok := adapters.ParseDate(rawDate, loc)
	if !ok {
		if rawDate != "" {
			logger.Debug().Str("date", rawDate).Msg("unparsable date, using today")
		}
		date = s.engine.Now()
	}

	window := windowFor(view, date, loc)
	items, err := s.records.Scan(ctx, modelstore.Filter{
		Statuses: terminalStatuses(),
		From:     window.Start,
		To:       window.End,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("view", string(view)).
			Msg("failed to scan records, serving empty result")
		s.metrics.RecordStoreError()
		items = nil
	}

	logger.Debug().
		Str("view", string(view)).
		Int("records", len(items)).
		Msg("records loaded")

	return request{
		view:   view,
		date:   date,
		events: adapters.MapStoreItemsToDomainEvents(items, loc),
	}, nil
}

func windowFor(view domain.View, date time.Time, loc *time.Location) aggregation.Window {
	switch view {
	case domain.ViewWeekly:
		return aggregation.WeekWindow(date, loc)
	case domain.ViewMonthly:
		return aggregation.MonthWindow(date, loc)
	default:
		return aggregation.DayWindow(date, loc)
	}
}

func terminalStatuses() []string {
	statuses := make([]string, 0, len(domain.TerminalStatuses))
	for _, s := range domain.TerminalStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

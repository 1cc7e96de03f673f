package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/cost-guardian/dashboard/pkg/runtime/terminal/commands"
	"github.com/cost-guardian/dashboard/pkg/services/query"
)

type fakeExporter struct {
	result api.ExportResult
}

func (f fakeExporter) Handle(context.Context) api.ExportResult {
	return f.result
}

type fakeQuerier struct {
	gotView, gotDate string
}

func (f *fakeQuerier) Handle(_ context.Context, view, date string) query.Response {
	f.gotView, f.gotDate = view, date
	if view == "foo" {
		return query.Response{Status: http.StatusBadRequest, Body: api.ErrorResponse{Error: "Invalid view parameter"}}
	}
	return query.Response{Status: http.StatusOK, Body: api.DailyResponse{View: view, Date: date}}
}

func (f *fakeQuerier) Report(_ context.Context, view, date string) (*domain.Report, error) {
	f.gotView, f.gotDate = view, date
	if view == "foo" {
		return nil, query.ErrInvalidView
	}
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	return &domain.Report{
		Title:       "Deleted resources on 2024-06-03",
		Period:      domain.TimePeriod{Start: day, End: day, Duration: 1},
		TotalAmount: decimal.RequireFromString("12.5"),
		Currency:    "USD",
		Sections: []domain.ReportSection{{
			Title:   "Deleted resources",
			Summary: map[string]interface{}{"Resources deleted": 1},
			Details: []domain.ReportDetail{{Name: "web (i-1)", Value: "12.50", Unit: "USD/mo", Description: "EC2"}},
		}},
	}, nil
}

type countingExporter struct {
	calls atomic.Int64
}

func (e *countingExporter) Handle(context.Context) api.ExportResult {
	e.calls.Add(1)
	return api.ExportResult{Status: http.StatusOK, Message: "Data exported successfully"}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newTestCLI(t *testing.T, svc *commands.Services, factoryErr error) (*CLI, *bytes.Buffer, *string) {
	t.Helper()
	var out bytes.Buffer
	var gotPath string
	cli := NewCLI(Options{
		Output: &out,
		Factory: func(_ context.Context, configPath string) (*commands.Services, error) {
			gotPath = configPath
			if factoryErr != nil {
				return nil, factoryErr
			}
			return svc, nil
		},
	})
	return cli, &out, &gotPath
}

func TestCLI_Export(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &commands.Services{Exporter: fakeExporter{result: api.ExportResult{
			Status:  http.StatusOK,
			Message: "Data exported successfully",
			Stats:   &api.ExportStats{TotalResources: 3, MonthlySavings: 10.5, LastUpdated: "2024-06-05T12:00:00.000000Z"},
		}}}
		cli, out, gotPath := newTestCLI(t, svc, nil)
		cli.SetArgs([]string{"export", "--config", "/etc/cost-guardian.yaml"})

		require.NoError(t, cli.Execute(context.Background()))

		var result api.ExportResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "Data exported successfully", result.Message)
		assert.Equal(t, 3, result.Stats.TotalResources)
		assert.Equal(t, "/etc/cost-guardian.yaml", *gotPath)
	})

	t.Run("failure", func(t *testing.T) {
		svc := &commands.Services{Exporter: fakeExporter{result: api.ExportResult{
			Status: http.StatusInternalServerError,
			Error:  "Error: failed to fetch records: throttled",
		}}}
		cli, out, _ := newTestCLI(t, svc, nil)
		cli.SetArgs([]string{"export"})

		err := cli.Execute(context.Background())

		assert.EqualError(t, err, "export failed with status 500")
		assert.Contains(t, out.String(), "Error: failed to fetch records: throttled")
	})

	t.Run("scheduled", func(t *testing.T) {
		svc := &commands.Services{Exporter: fakeExporter{result: api.ExportResult{
			Status: http.StatusInternalServerError,
			Error:  "Error: conflict",
		}}}
		cli, out, _ := newTestCLI(t, svc, nil)
		cli.SetArgs([]string{"export", "--every", "5ms"})

		ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
		defer cancel()

		require.NoError(t, cli.Execute(ctx))
		assert.GreaterOrEqual(t, strings.Count(out.String(), "Error: conflict"), 1)
	})

	t.Run("scheduled stops when output fails", func(t *testing.T) {
		exporter := &countingExporter{}
		cli := NewCLI(Options{
			Output: failingWriter{},
			Factory: func(context.Context, string) (*commands.Services, error) {
				return &commands.Services{Exporter: exporter}, nil
			},
		})
		cli.SetArgs([]string{"export", "--every", "2ms"})

		err := cli.Execute(context.Background())

		assert.ErrorContains(t, err, "broken pipe")
		calls := exporter.calls.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, calls, exporter.calls.Load())
	})

	t.Run("factory failure", func(t *testing.T) {
		cli, _, _ := newTestCLI(t, nil, errors.New("invalid configuration"))
		cli.SetArgs([]string{"export"})

		assert.EqualError(t, cli.Execute(context.Background()), "invalid configuration")
	})
}

func TestCLI_Query(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		querier := &fakeQuerier{}
		cli, out, _ := newTestCLI(t, &commands.Services{Query: querier}, nil)
		cli.SetArgs([]string{"query", "--date", "2024-06-03"})

		require.NoError(t, cli.Execute(context.Background()))

		assert.Equal(t, "daily", querier.gotView)
		assert.Equal(t, "2024-06-03", querier.gotDate)
		assert.Contains(t, out.String(), "Deleted resources on 2024-06-03 (1 days)")
		assert.Contains(t, out.String(), "Monthly Savings: USD 12.50")
		assert.Contains(t, out.String(), "| web (i-1)")
	})

	t.Run("json", func(t *testing.T) {
		querier := &fakeQuerier{}
		cli, out, _ := newTestCLI(t, &commands.Services{Query: querier}, nil)
		cli.SetArgs([]string{"query", "--view", "weekly", "--json"})

		require.NoError(t, cli.Execute(context.Background()))

		var doc api.DailyResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, "weekly", doc.View)
	})

	t.Run("invalid view", func(t *testing.T) {
		cli, _, _ := newTestCLI(t, &commands.Services{Query: &fakeQuerier{}}, nil)
		cli.SetArgs([]string{"query", "--view", "foo"})

		err := cli.Execute(context.Background())

		assert.ErrorIs(t, err, query.ErrInvalidView)
	})

	t.Run("invalid view as json", func(t *testing.T) {
		cli, out, _ := newTestCLI(t, &commands.Services{Query: &fakeQuerier{}}, nil)
		cli.SetArgs([]string{"query", "--view", "foo", "--json"})

		err := cli.Execute(context.Background())

		assert.EqualError(t, err, "query failed with status 400")
		assert.JSONEq(t, `{"error":"Invalid view parameter"}`, out.String())
	})
}

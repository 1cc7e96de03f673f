package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type QueryCmd struct {
	view     string
	date     string
	asJSON   bool
	services servicesFunc
	reporter ReportHandler
	output   DocumentHandler
}

func NewQueryCmd(services servicesFunc, reporter ReportHandler, output DocumentHandler) *cobra.Command {
	qc := &QueryCmd{services: services, reporter: reporter, output: output}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print a daily, weekly or monthly view of deleted resources",
		Args:  cobra.NoArgs,
		RunE:  qc.run,
	}

	cmd.Flags().StringVar(&qc.view, "view", "daily", "View to build (daily, weekly, monthly)")
	cmd.Flags().StringVar(&qc.date, "date", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&qc.asJSON, "json", false, "Print the API document instead of a table")

	return cmd
}

func (qc *QueryCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := qc.services(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if qc.asJSON {
		resp := svc.Query.Handle(ctx, qc.view, qc.date)
		if err := qc.output.Handle(resp.Body); err != nil {
			return err
		}
		if resp.Status != http.StatusOK {
			return fmt.Errorf("query failed with status %d", resp.Status)
		}
		return nil
	}

	report, err := svc.Query.Report(ctx, qc.view, qc.date)
	if err != nil {
		return fmt.Errorf("failed to build %s view: %w", qc.view, err)
	}
	return qc.reporter.Handle(report)
}

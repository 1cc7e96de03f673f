package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cost-guardian/dashboard/pkg/services/workflow"
)

type ExportCmd struct {
	services servicesFunc
	output   DocumentHandler
	every    time.Duration
}

func NewExportCmd(services servicesFunc, output DocumentHandler) *cobra.Command {
	ec := &ExportCmd{services: services, output: output}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Aggregate the full resource log and publish the dashboard snapshot",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}
	cmd.Flags().DurationVar(&ec.every, "every", 0,
		"Repeat the export on this interval until interrupted (0 runs once)")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := ec.services(cmd)
	if err != nil {
		return err
	}

	if ec.every > 0 {
		return ec.schedule(cmd, svc.Exporter)
	}

	result := svc.Exporter.Handle(cmd.Context())
	if err := ec.output.Handle(result); err != nil {
		return err
	}

	if result.Status != http.StatusOK {
		return fmt.Errorf("export failed with status %d", result.Status)
	}
	return nil
}

// schedule prints every run until the command context ends. Failed runs do
// not stop the schedule.
func (ec *ExportCmd) schedule(cmd *cobra.Command, exporter Exporter) error {
	runner, err := workflow.NewRunner(exporter, workflow.RunnerConfig{Interval: ec.every, RunOnStart: true})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go runner.Run(ctx)

	for progress := range runner.Progress() {
		if err := ec.output.Handle(progress.LastResult); err != nil {
			cancel()
			<-runner.Done()
			return err
		}
	}
	<-runner.Done()
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cost-guardian/dashboard/pkg/runtime/app"
	"github.com/cost-guardian/dashboard/pkg/server"
	"github.com/cost-guardian/dashboard/pkg/services/workflow"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Cost Guardian dashboard query API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment variables prefixed COSTGUARDIAN_ always apply)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}
	ctx, cancel := context.WithCancel(logger.WithContext(cmd.Context()))
	defer cancel()

	a, err := app.Load(ctx, cfgPath, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	api := server.NewWebAPI(server.Config{
		Addr: a.Config.Listen,
		Dependencies: server.Dependencies{
			Query:   a.Query,
			Logger:  logger,
			Metrics: promhttp.Handler(),
		},
	})

	if a.Config.ExportInterval <= 0 {
		return api.Start(ctx)
	}

	runner, err := workflow.NewRunner(a.Exporter, workflow.RunnerConfig{
		Interval:   a.Config.ExportInterval,
		RunOnStart: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create export runner: %w", err)
	}
	go runner.Run(ctx)

	err = api.Start(ctx)
	cancel()
	<-runner.Done()
	return err
}

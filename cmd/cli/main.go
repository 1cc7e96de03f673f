package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/runtime/app"
	"github.com/cost-guardian/dashboard/pkg/runtime/terminal"
	"github.com/cost-guardian/dashboard/pkg/runtime/terminal/commands"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cli := terminal.NewCLI(terminal.Options{
		Factory: func(ctx context.Context, configPath string) (*commands.Services, error) {
			a, err := app.Load(ctx, configPath, app.Options{})
			if err != nil {
				return nil, err
			}
			return &commands.Services{Query: a.Query, Exporter: a.Exporter}, nil
		},
		Output: os.Stdout,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

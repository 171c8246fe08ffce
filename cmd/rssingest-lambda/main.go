package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"rssingest/app"
	"rssingest/internal/backend"
	"rssingest/internal/config"
	"rssingest/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rssingest-lambda:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	p, err := backend.Open(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	lambda.Start(func(ctx context.Context, ev app.Event) (app.InvocationResult, error) {
		return p.Handler.Handle(ctx, ev), nil
	})
	return nil
}

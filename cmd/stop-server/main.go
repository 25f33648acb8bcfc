// Where: cmd/stop-server/main.go
// What: Lambda entrypoint for the public stop endpoint.
// Why: Build the stop service once per cold start and serve API Gateway events.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/poruru/stop-server/internal/config"
	"github.com/poruru/stop-server/internal/handler"
	"github.com/poruru/stop-server/internal/logging"
	"github.com/poruru/stop-server/internal/wire"
)

func main() {
	startup := logging.Default(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		startup.WithError(err).Fatal("invalid configuration")
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stdout)
	if err != nil {
		startup.WithError(err).Fatal("invalid logging configuration")
	}

	svc, _, err := wire.Service(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build stop service")
	}

	lambda.Start(handler.New(svc, logger).Handle)
}

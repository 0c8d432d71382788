package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/costq/costq/internal/handler"
	"github.com/costq/costq/internal/services/billing"
)

// Lambda entrypoint. Credentials and region come from the execution role and
// environment; timeouts are whatever the function configuration imposes.
func main() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		slog.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	billingService := billing.NewBillingService(costexplorer.NewFromConfig(cfg))
	requestHandler := handler.NewHandler(billingService)

	lambda.Start(requestHandler.Handle)
}

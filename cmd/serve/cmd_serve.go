package serve

import (
	"fmt"

	"github.com/costq/costq/internal/client"
	"github.com/costq/costq/internal/handler"
	"github.com/costq/costq/internal/services/billing"
	"github.com/costq/costq/internal/utils"
	"github.com/spf13/cobra"
)

var (
	port              string
	region            string
	requestsPerSecond float64
	burstSize         int
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Start a local HTTP server exposing the billing query handler",
		Long:          "Serves the same handler the Lambda entrypoint runs, at GET /costs, plus /health and Prometheus /metrics.",
		Example:       `costq serve --port 8080`,
		SilenceErrors: true,
		PreRunE:       preRunServe,
		RunE:          runServe,
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the Cost Explorer client (optional, defaults to ambient config)")
	cmd.Flags().Float64Var(&requestsPerSecond, "rate-limit", 2, "Maximum Cost Explorer requests per second across all requests")
	cmd.Flags().IntVar(&burstSize, "rate-burst", 2, "Cost Explorer request burst size")

	return cmd
}

func preRunServe(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	costExplorerClient, err := client.NewRateLimitedCostExplorerClient(region, requestsPerSecond, burstSize)
	if err != nil {
		return fmt.Errorf("❌ failed to create cost explorer client: %v", err)
	}

	billingService := billing.NewBillingService(costExplorerClient)
	requestHandler := handler.NewHandler(billingService)

	server := NewServer(requestHandler, ServerOpts{Port: port})
	if err := server.Run(); err != nil {
		return fmt.Errorf("❌ failed to start server: %v", err)
	}

	return nil
}

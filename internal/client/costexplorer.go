package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"golang.org/x/time/rate"
)

func NewCostExplorerClient(region string) (*costexplorer.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to load AWS config: %v", err)
	}

	if region != "" {
		cfg.Region = region
	}

	return costexplorer.NewFromConfig(cfg), nil
}

// RateLimitedCostExplorerClient throttles GetCostAndUsage calls with a local
// token bucket. The Cost Explorer API has a low account-wide request quota
// and bills per request, so a long-running server shares one limiter across
// all requests. The call itself is never retried.
type RateLimitedCostExplorerClient struct {
	*costexplorer.Client
	limiter *rate.Limiter
}

func NewRateLimitedCostExplorerClient(region string, requestsPerSecond float64, burstSize int) (*RateLimitedCostExplorerClient, error) {
	costExplorerClient, err := NewCostExplorerClient(region)
	if err != nil {
		return nil, err
	}

	return &RateLimitedCostExplorerClient{
		Client:  costExplorerClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

func (c *RateLimitedCostExplorerClient) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter cancelled: %w", err)
	}

	return c.Client.GetCostAndUsage(ctx, params, optFns...)
}

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	costexplorertypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/costq/costq/internal/metrics"
	"github.com/costq/costq/internal/types"
	"github.com/shopspring/decimal"
)

// metricUnblendedCost is the GetCostAndUsage metric name. The response echoes
// it back as the key of each group's metrics map, so request and lookup must
// use the same spelling.
const metricUnblendedCost = "UnblendedCost"

// CostExplorerAPI is the subset of the Cost Explorer client used by the
// billing service.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type BillingService struct {
	client CostExplorerAPI
}

func NewBillingService(client CostExplorerAPI) *BillingService {
	return &BillingService{
		client: client,
	}
}

// GetCostsByService issues a single cost-and-usage query for the given date
// range: monthly granularity, unblended cost, grouped by the SERVICE
// dimension, filtered by the optional expression. There are no retries and no
// pagination; the caller gets the raw first page or an error.
func (bs *BillingService) GetCostsByService(ctx context.Context, dateRange DateRange, filter *costexplorertypes.Expression) (*costexplorer.GetCostAndUsageOutput, error) {
	slog.Info("💰 querying cost explorer", "start", dateRange.StartString(), "end", dateRange.EndString(), "filtered", filter != nil)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &costexplorertypes.DateInterval{
			Start: aws.String(dateRange.StartString()),
			End:   aws.String(dateRange.EndString()),
		},
		Granularity: costexplorertypes.GranularityMonthly,
		Metrics:     []string{metricUnblendedCost},
		GroupBy: []costexplorertypes.GroupDefinition{
			{
				Type: costexplorertypes.GroupDefinitionTypeDimension,
				Key:  aws.String(string(costexplorertypes.DimensionService)),
			},
		},
	}

	if filter != nil {
		input.Filter = filter
	}

	queryStart := time.Now()
	output, err := bs.client.GetCostAndUsage(ctx, input)
	metrics.ObserveCostQuery(time.Since(queryStart), err)
	if err != nil {
		return nil, fmt.Errorf("cost explorer query failed: %v", err)
	}

	return output, nil
}

// FlattenResults reshapes the nested per-period, per-group response into a
// flat ordered list of (service, cost) records. Amounts are parsed as
// decimals and rounded half-up to two places. Every time bucket in range is
// folded into the same list, so a multi-month range repeats service names
// once per month.
func FlattenResults(output *costexplorer.GetCostAndUsageOutput) ([]types.ServiceCost, error) {
	costs := []types.ServiceCost{}
	if output == nil {
		return costs, nil
	}

	for _, result := range output.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				return nil, fmt.Errorf("malformed cost explorer response: group without keys")
			}

			metric, ok := group.Metrics[metricUnblendedCost]
			if !ok || metric.Amount == nil {
				return nil, fmt.Errorf("malformed cost explorer response: group '%s' has no %s amount", group.Keys[0], metricUnblendedCost)
			}

			amount, err := decimal.NewFromString(*metric.Amount)
			if err != nil {
				return nil, fmt.Errorf("malformed cost explorer response: unparseable amount '%s' for '%s'", *metric.Amount, group.Keys[0])
			}

			cost, _ := amount.Round(2).Float64()
			costs = append(costs, types.ServiceCost{
				Service: group.Keys[0],
				Cost:    cost,
			})
		}
	}

	return costs, nil
}

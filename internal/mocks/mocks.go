package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
)

// MockCostExplorerAPI is a mock implementation of the billing service's
// CostExplorerAPI interface
type MockCostExplorerAPI struct {
	GetCostAndUsageFunc func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

func (m *MockCostExplorerAPI) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	return m.GetCostAndUsageFunc(ctx, params, optFns...)
}

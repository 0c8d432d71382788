package table

import (
	"strings"
	"testing"

	"github.com/costq/costq/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SingleRow(t *testing.T) {
	costs := []types.ServiceCost{
		{Service: "EC2", Cost: 100.00},
	}

	expected := strings.Join([]string{
		"| Service | Cost (USD) |",
		"|---------|------------|",
		"| EC2     |     100.00 |",
	}, "\n")

	assert.Equal(t, expected, Render(costs))
}

func TestRender_SortsByCostDescending(t *testing.T) {
	costs := []types.ServiceCost{
		{Service: "S3", Cost: 1.2},
		{Service: "EC2", Cost: 12.35},
	}

	expected := strings.Join([]string{
		"| Service | Cost (USD) |",
		"|---------|------------|",
		"| EC2     |      12.35 |",
		"| S3      |       1.20 |",
	}, "\n")

	assert.Equal(t, expected, Render(costs))
}

func TestRender_EqualCostsKeepInputOrder(t *testing.T) {
	costs := []types.ServiceCost{
		{Service: "Amazon CloudWatch", Cost: 5.00},
		{Service: "AWS Lambda", Cost: 5.00},
		{Service: "Amazon S3", Cost: 5.00},
	}

	rendered := Render(costs)
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[2], "Amazon CloudWatch")
	assert.Contains(t, lines[3], "AWS Lambda")
	assert.Contains(t, lines[4], "Amazon S3")
}

func TestRender_ColumnWidthsFitLongestValue(t *testing.T) {
	costs := []types.ServiceCost{
		{Service: "Amazon Managed Streaming for Apache Kafka", Cost: 12345.67},
		{Service: "EC2", Cost: 1.00},
	}

	rendered := Render(costs)
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 4)

	// Every row is exactly as wide as the widest cell in each column.
	for _, line := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(line))
	}

	// Service column fits the longest name, cost column still fits its header.
	assert.Contains(t, lines[1], strings.Repeat("-", len("Amazon Managed Streaming for Apache Kafka")+2))
	assert.Contains(t, lines[0], "Cost (USD)")
}

func TestRender_InputIsNotMutated(t *testing.T) {
	costs := []types.ServiceCost{
		{Service: "S3", Cost: 1.00},
		{Service: "EC2", Cost: 2.00},
	}

	Render(costs)

	assert.Equal(t, "S3", costs[0].Service)
	assert.Equal(t, "EC2", costs[1].Service)
}

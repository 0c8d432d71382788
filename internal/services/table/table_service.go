package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/costq/costq/internal/types"
)

const (
	serviceHeader = "Service"
	costHeader    = "Cost (USD)"
)

// Render formats per-service costs as a fixed-width pipe table, highest spend
// first. Equal costs keep their input order. Each column is as wide as its
// longest value, header included; service names are left-aligned and costs
// right-aligned with two decimal places.
//
// Callers are expected to substitute a "no data" message instead of rendering
// an empty table.
func Render(costs []types.ServiceCost) string {
	sorted := make([]types.ServiceCost, len(costs))
	copy(sorted, costs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cost > sorted[j].Cost
	})

	serviceWidth := len(serviceHeader)
	costWidth := len(costHeader)
	for _, cost := range sorted {
		serviceWidth = max(serviceWidth, len(cost.Service))
		costWidth = max(costWidth, len(formatCost(cost.Cost)))
	}

	rows := []string{
		fmt.Sprintf("| %-*s | %*s |", serviceWidth, serviceHeader, costWidth, costHeader),
		fmt.Sprintf("|%s|%s|", strings.Repeat("-", serviceWidth+2), strings.Repeat("-", costWidth+2)),
	}

	for _, cost := range sorted {
		rows = append(rows, fmt.Sprintf("| %-*s | %*s |", serviceWidth, cost.Service, costWidth, formatCost(cost.Cost)))
	}

	return strings.Join(rows, "\n")
}

func formatCost(cost float64) string {
	return fmt.Sprintf("%.2f", cost)
}

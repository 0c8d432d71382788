package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	costexplorertypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/costq/costq/internal/services/billing"
	"github.com/costq/costq/internal/services/markdown"
	"github.com/costq/costq/internal/services/table"
	"github.com/costq/costq/internal/types"
)

type BillingService interface {
	GetCostsByService(ctx context.Context, dateRange billing.DateRange, filter *costexplorertypes.Expression) (*costexplorer.GetCostAndUsageOutput, error)
}

type CostReporterOpts struct {
	Start       string
	End         string
	Services    []string
	Regions     []string
	Tags        map[string][]string
	Format      string
	WriteReport bool
}

type CostReporter struct {
	billingService BillingService

	start       string
	end         string
	services    []string
	regions     []string
	tags        map[string][]string
	format      string
	writeReport bool
}

func NewCostReporter(billingService BillingService, opts CostReporterOpts) *CostReporter {
	return &CostReporter{
		billingService: billingService,

		start:       opts.Start,
		end:         opts.End,
		services:    opts.Services,
		regions:     opts.Regions,
		tags:        opts.Tags,
		format:      opts.Format,
		writeReport: opts.WriteReport,
	}
}

func (r *CostReporter) Run(ctx context.Context) error {
	params := r.queryParameters()

	dateRange, err := billing.ResolveDateRange(params, time.Now())
	if err != nil {
		return fmt.Errorf("invalid date range: %v", err)
	}

	slog.Info("🔍 reporting costs", "start", dateRange.StartString(), "end", dateRange.EndString(), "services", r.services, "regions", r.regions, "tags", r.tags)

	filter := billing.BuildFilter(params)

	output, err := r.billingService.GetCostsByService(ctx, dateRange, filter)
	if err != nil {
		return err
	}

	costs, err := billing.FlattenResults(output)
	if err != nil {
		return err
	}

	costReport := types.NewCostReport(dateRange.StartString(), dateRange.EndString(), types.AppliedFilters{
		Services: r.services,
		Regions:  r.regions,
		Tags:     r.tags,
	}, costs)

	if err := r.printReport(costReport, costs); err != nil {
		return err
	}

	if r.writeReport {
		if err := costReport.WriteAsJson(); err != nil {
			return err
		}
		if err := costReport.WriteAsCSV(); err != nil {
			return err
		}
		if err := costReport.WriteAsMarkdown(true); err != nil {
			return err
		}
		slog.Info("📄 report files written", "dir", costReport.GetDirPath())
	}

	return nil
}

func (r *CostReporter) printReport(costReport *types.CostReport, costs []types.ServiceCost) error {
	if len(costs) == 0 {
		fmt.Println("No data found")
		return nil
	}

	switch r.format {
	case "json":
		data, err := costReport.AsJson()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "markdown":
		if err := costReport.AsMarkdown().Print(markdown.PrintOptions{ToTerminal: true}); err != nil {
			return fmt.Errorf("failed to render markdown report: %v", err)
		}
	default:
		fmt.Println(table.Render(costs))
	}

	return nil
}

// queryParameters expresses the report flags in the handler's query-string
// vocabulary so date resolution and filter construction are shared with the
// serverless path.
func (r *CostReporter) queryParameters() map[string]string {
	params := map[string]string{}

	if r.start != "" {
		params["start_date"] = r.start
	}
	if r.end != "" {
		params["end_date"] = r.end
	}
	if len(r.services) > 0 {
		params["services"] = strings.Join(r.services, ",")
	}
	if len(r.regions) > 0 {
		params["regions"] = strings.Join(r.regions, ",")
	}
	for name, values := range r.tags {
		params["tag_"+name] = strings.Join(values, ",")
	}

	return params
}

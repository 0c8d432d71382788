package report

import (
	"fmt"
	"strings"

	"github.com/costq/costq/internal/client"
	"github.com/costq/costq/internal/services/billing"
	"github.com/costq/costq/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	start       string
	end         string
	region      string
	services    []string
	regions     []string
	tags        []string
	format      string
	writeReport bool
)

func NewReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:           "report",
		Short:         "Query monthly spend by service and print it",
		Long:          "Run one Cost Explorer query for the given date range and filters, and print the spend per service as a table, JSON, or rendered markdown.",
		Example:       `costq report --start 2025-03-01 --end 2025-03-31 --regions us-east-1 --format table`,
		SilenceErrors: true,
		PreRunE:       preRunReport,
		RunE:          runReport,
	}

	groups := map[*pflag.FlagSet]string{}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&start, "start", "", "inclusive start date for the report (YYYY-MM-DD, default: first day of current month)")
	optionalFlags.StringVar(&end, "end", "", "inclusive end date for the report (YYYY-MM-DD, default: yesterday)")
	optionalFlags.StringVar(&region, "region", "", "AWS region for the Cost Explorer client (default: ambient config)")
	optionalFlags.StringSliceVar(&services, "services", []string{}, "service names to filter by (comma separated list or repeated flag)")
	optionalFlags.StringSliceVar(&regions, "regions", []string{}, "regions to filter costs by (comma separated list or repeated flag)")
	optionalFlags.StringArrayVar(&tags, "tag", []string{}, "tag filter in the form 'name=value1,value2' (repeatable)")
	optionalFlags.StringVar(&format, "format", "table", "output format: table, json, or markdown")
	optionalFlags.BoolVar(&writeReport, "write-report", false, "also write JSON, CSV and markdown report files to ./costq-report")
	reportCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	reportCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		for fs, groupName := range groups {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n%s\n", groupName, usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	reportCmd.MarkFlagsRequiredTogether("start", "end")

	return reportCmd
}

func preRunReport(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	opts, err := parseCostReporterOpts()
	if err != nil {
		return fmt.Errorf("❌ failed to parse report opts: %v", err)
	}

	costExplorerClient, err := client.NewCostExplorerClient(region)
	if err != nil {
		return fmt.Errorf("❌ failed to create cost explorer client: %v", err)
	}

	billingService := billing.NewBillingService(costExplorerClient)

	costReporter := NewCostReporter(billingService, *opts)
	if err := costReporter.Run(cmd.Context()); err != nil {
		return fmt.Errorf("❌ failed to report costs: %v", err)
	}
	return nil
}

func parseCostReporterOpts() (*CostReporterOpts, error) {
	outputFormat := strings.ToLower(format)
	switch outputFormat {
	case "table", "json", "markdown":
	default:
		return nil, fmt.Errorf("invalid format '%s': expected table, json, or markdown", format)
	}

	tagFilters, err := utils.ParseTagFilters(tags)
	if err != nil {
		return nil, err
	}

	opts := CostReporterOpts{
		Start:       start,
		End:         end,
		Services:    services,
		Regions:     regions,
		Tags:        tagFilters,
		Format:      outputFormat,
		WriteReport: writeReport,
	}

	return &opts, nil
}

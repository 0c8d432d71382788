package types

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/costq/costq/internal/build_info"
	"github.com/costq/costq/internal/services/markdown"
)

// ServiceCost is one row of a cost report: a service name and its spend in
// USD, rounded to two decimal places. The JSON field names match the response
// body contract of the query API.
type ServiceCost struct {
	Service string  `json:"Service"`
	Cost    float64 `json:"Cost (USD)"`
}

// AppliedFilters records which filters were applied to a cost query.
type AppliedFilters struct {
	Services []string            `json:"services,omitempty"`
	Regions  []string            `json:"regions,omitempty"`
	Tags     map[string][]string `json:"tags,omitempty"`
}

type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type CostReport struct {
	BuildInfo   BuildInfo      `json:"costq_build_info"`
	Timestamp   time.Time      `json:"timestamp"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Granularity string         `json:"granularity"`
	Filters     AppliedFilters `json:"filters"`
	Costs       []ServiceCost  `json:"costs"`
	Total       float64        `json:"total"`
}

func NewCostReport(startDate, endDate string, filters AppliedFilters, costs []ServiceCost) *CostReport {
	var total float64
	for _, cost := range costs {
		total += cost.Cost
	}

	return &CostReport{
		BuildInfo: BuildInfo{
			Version: build_info.Version,
			Commit:  build_info.Commit,
			Date:    build_info.Date,
		},
		Timestamp:   time.Now(),
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: "MONTHLY",
		Filters:     filters,
		Costs:       costs,
		Total:       total,
	}
}

func (r *CostReport) GetDirPath() string {
	return "costq-report"
}

func (r *CostReport) GetJsonPath() string {
	return filepath.Join(r.GetDirPath(), fmt.Sprintf("cost-report-%s-to-%s.json", r.StartDate, r.EndDate))
}

func (r *CostReport) GetMarkdownPath() string {
	return filepath.Join(r.GetDirPath(), fmt.Sprintf("cost-report-%s-to-%s.md", r.StartDate, r.EndDate))
}

func (r *CostReport) GetCSVPath() string {
	return filepath.Join(r.GetDirPath(), fmt.Sprintf("cost-report-%s-to-%s.csv", r.StartDate, r.EndDate))
}

func (r *CostReport) AsJson() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to marshal cost report: %v", err)
	}
	return data, nil
}

func (r *CostReport) WriteAsJson() error {
	if err := os.MkdirAll(r.GetDirPath(), 0755); err != nil {
		return fmt.Errorf("❌ Failed to create directory structure: %v", err)
	}

	data, err := r.AsJson()
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.GetJsonPath(), data, 0644); err != nil {
		return fmt.Errorf("❌ Failed to write file: %v", err)
	}

	return nil
}

func (r *CostReport) AsMarkdown() *markdown.Markdown {
	md := markdown.New()
	md.AddHeading("AWS Cost Report", 1)
	md.AddParagraph(fmt.Sprintf("**Report Period:** %s to %s", r.StartDate, r.EndDate))
	md.AddParagraph(fmt.Sprintf("**Granularity:** %s", r.Granularity))

	if len(r.Filters.Services) > 0 {
		md.AddParagraph("**Services:**")
		md.AddList(r.Filters.Services)
	}

	if len(r.Filters.Regions) > 0 {
		md.AddParagraph("**Regions:**")
		md.AddList(r.Filters.Regions)
	}

	if len(r.Filters.Tags) > 0 {
		md.AddParagraph("**Tags:**")
		for k, v := range r.Filters.Tags {
			md.AddParagraph(fmt.Sprintf("%s=%s", k, strings.Join(v, ",")))
		}
	}

	md.AddHeading("Cost By Service", 2)
	headers := []string{"Service", "Cost (USD)"}
	data := [][]string{}
	for _, cost := range r.Costs {
		data = append(data, []string{cost.Service, fmt.Sprintf("%.2f", cost.Cost)})
	}
	data = append(data, []string{"**Total**", fmt.Sprintf("**%.2f**", r.Total)})
	md.AddTable(headers, data)

	md.AddHeading("Build Info", 2)
	md.AddParagraph(fmt.Sprintf("**Version:** %s", r.BuildInfo.Version))
	md.AddParagraph(fmt.Sprintf("**Commit:** %s", r.BuildInfo.Commit))
	md.AddParagraph(fmt.Sprintf("**Date:** %s", r.BuildInfo.Date))

	return md
}

func (r *CostReport) WriteAsMarkdown(suppressToTerminal bool) error {
	if err := os.MkdirAll(r.GetDirPath(), 0755); err != nil {
		return fmt.Errorf("❌ Failed to create directory structure: %v", err)
	}

	md := r.AsMarkdown()
	return md.Print(markdown.PrintOptions{ToTerminal: !suppressToTerminal, ToFile: r.GetMarkdownPath()})
}

func (r *CostReport) AsCSVRecords() [][]string {
	records := [][]string{
		{"Service", "Cost (USD)"},
	}

	for _, cost := range r.Costs {
		records = append(records, []string{cost.Service, fmt.Sprintf("%.2f", cost.Cost)})
	}

	records = append(records, []string{"TOTAL", fmt.Sprintf("%.2f", r.Total)})

	return records
}

func (r *CostReport) WriteAsCSV() error {
	if err := os.MkdirAll(r.GetDirPath(), 0755); err != nil {
		return fmt.Errorf("❌ Failed to create directory structure: %v", err)
	}

	file, err := os.Create(r.GetCSVPath())
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, record := range r.AsCSVRecords() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %v", err)
		}
	}

	return nil
}

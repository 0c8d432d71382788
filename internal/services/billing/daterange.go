package billing

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is the inclusive calendar date range of a cost query.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveDateRange reads start_date/end_date from the query parameters and
// validates them. Missing dates default to the first day of the current month
// and yesterday respectively, both derived from the supplied now so a request
// sees a single consistent clock reading.
func ResolveDateRange(params map[string]string, now time.Time) (DateRange, error) {
	startStr := params["start_date"]
	if startStr == "" {
		startStr = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	}

	endStr := params["end_date"]
	if endStr == "" {
		endStr = now.AddDate(0, 0, -1).Format(dateLayout)
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start_date '%s': expected YYYY-MM-DD", startStr)
	}

	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end_date '%s': expected YYYY-MM-DD", endStr)
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("start_date must be before end_date")
	}

	return DateRange{Start: start, End: end}, nil
}

func (d DateRange) StartString() string {
	return d.Start.Format(dateLayout)
}

func (d DateRange) EndString() string {
	return d.End.Format(dateLayout)
}

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		params        map[string]string
		expectedStart string
		expectedEnd   string
		expectedErr   string
	}{
		{
			name:          "explicit valid range",
			params:        map[string]string{"start_date": "2025-03-01", "end_date": "2025-03-31"},
			expectedStart: "2025-03-01",
			expectedEnd:   "2025-03-31",
		},
		{
			name:          "both dates omitted defaults to month start and yesterday",
			params:        map[string]string{},
			expectedStart: "2025-03-01",
			expectedEnd:   "2025-03-14",
		},
		{
			name:          "only end omitted",
			params:        map[string]string{"start_date": "2025-03-03"},
			expectedStart: "2025-03-03",
			expectedEnd:   "2025-03-14",
		},
		{
			name:          "equal start and end is valid",
			params:        map[string]string{"start_date": "2025-03-10", "end_date": "2025-03-10"},
			expectedStart: "2025-03-10",
			expectedEnd:   "2025-03-10",
		},
		{
			name:        "malformed start date",
			params:      map[string]string{"start_date": "03/01/2025", "end_date": "2025-03-31"},
			expectedErr: "invalid start_date '03/01/2025': expected YYYY-MM-DD",
		},
		{
			name:        "malformed end date",
			params:      map[string]string{"start_date": "2025-03-01", "end_date": "not-a-date"},
			expectedErr: "invalid end_date 'not-a-date': expected YYYY-MM-DD",
		},
		{
			name:        "inverted range",
			params:      map[string]string{"start_date": "2025-03-31", "end_date": "2025-03-01"},
			expectedErr: "start_date must be before end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dateRange, err := ResolveDateRange(tt.params, now)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, dateRange.StartString())
			assert.Equal(t, tt.expectedEnd, dateRange.EndString())
		})
	}
}

func TestResolveDateRange_DefaultsCrossMonthBoundary(t *testing.T) {
	// On the first of the month yesterday falls in the previous month, so the
	// defaults form an inverted range and the request is rejected before any
	// remote call.
	now := time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)

	_, err := ResolveDateRange(map[string]string{}, now)
	require.Error(t, err)
	assert.Equal(t, "start_date must be before end_date", err.Error())
}

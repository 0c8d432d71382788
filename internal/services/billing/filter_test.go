package billing

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	costexplorertypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter_NoRecognizedParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{
			name:   "empty params",
			params: map[string]string{},
		},
		{
			name: "only dates and format",
			params: map[string]string{
				"start_date": "2025-03-01",
				"end_date":   "2025-03-31",
				"format":     "table",
			},
		},
		{
			name: "tag prefix must match exactly",
			params: map[string]string{
				"tagteam": "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, BuildFilter(tt.params))
		})
	}
}

func TestBuildFilter_SinglePredicateIsUnwrapped(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		validate func(t *testing.T, filter *costexplorertypes.Expression)
	}{
		{
			name:   "services only",
			params: map[string]string{"services": "Amazon EC2,Amazon S3"},
			validate: func(t *testing.T, filter *costexplorertypes.Expression) {
				require.NotNil(t, filter.Dimensions)
				assert.Nil(t, filter.And)
				assert.Equal(t, costexplorertypes.DimensionService, filter.Dimensions.Key)
				assert.Equal(t, []string{"Amazon EC2", "Amazon S3"}, filter.Dimensions.Values)
			},
		},
		{
			name:   "regions only",
			params: map[string]string{"regions": "us-east-1"},
			validate: func(t *testing.T, filter *costexplorertypes.Expression) {
				require.NotNil(t, filter.Dimensions)
				assert.Nil(t, filter.And)
				assert.Equal(t, costexplorertypes.DimensionRegion, filter.Dimensions.Key)
				assert.Equal(t, []string{"us-east-1"}, filter.Dimensions.Values)
			},
		},
		{
			name:   "single tag only",
			params: map[string]string{"tag_Environment": "production,staging"},
			validate: func(t *testing.T, filter *costexplorertypes.Expression) {
				require.NotNil(t, filter.Tags)
				assert.Nil(t, filter.And)
				assert.Equal(t, "Environment", aws.ToString(filter.Tags.Key))
				assert.Equal(t, []string{"production", "staging"}, filter.Tags.Values)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := BuildFilter(tt.params)
			require.NotNil(t, filter)
			tt.validate(t, filter)
		})
	}
}

func TestBuildFilter_MultiplePredicatesAreAndWrapped(t *testing.T) {
	params := map[string]string{
		"services":        "Amazon EC2",
		"regions":         "us-east-1,eu-west-1",
		"tag_Team":        "data",
		"tag_Environment": "production",
	}

	filter := BuildFilter(params)
	require.NotNil(t, filter)
	require.Len(t, filter.And, 4)

	// services, then regions, then tags in sorted key order
	require.NotNil(t, filter.And[0].Dimensions)
	assert.Equal(t, costexplorertypes.DimensionService, filter.And[0].Dimensions.Key)

	require.NotNil(t, filter.And[1].Dimensions)
	assert.Equal(t, costexplorertypes.DimensionRegion, filter.And[1].Dimensions.Key)
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, filter.And[1].Dimensions.Values)

	require.NotNil(t, filter.And[2].Tags)
	assert.Equal(t, "Environment", aws.ToString(filter.And[2].Tags.Key))

	require.NotNil(t, filter.And[3].Tags)
	assert.Equal(t, "Team", aws.ToString(filter.And[3].Tags.Key))
	assert.Equal(t, []string{"data"}, filter.And[3].Tags.Values)
}

func TestBuildFilter_TwoPredicates(t *testing.T) {
	params := map[string]string{
		"services": "Amazon S3",
		"regions":  "us-west-2",
	}

	filter := BuildFilter(params)
	require.NotNil(t, filter)
	assert.Nil(t, filter.Dimensions)
	require.Len(t, filter.And, 2)
	assert.Equal(t, costexplorertypes.DimensionService, filter.And[0].Dimensions.Key)
	assert.Equal(t, costexplorertypes.DimensionRegion, filter.And[1].Dimensions.Key)
}

package billing

import (
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	costexplorertypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

const tagParamPrefix = "tag_"

// BuildFilter translates the recognized query parameters into a Cost Explorer
// filter expression:
//
//   - services → SERVICE dimension predicate
//   - regions  → REGION dimension predicate
//   - tag_<name> → tag predicate per tag name
//
// Values are comma-separated lists. Zero predicates returns nil (no filter),
// a single predicate is returned unwrapped, and two or more are combined
// under an And node in services-then-regions-then-tags order. Tag parameters
// are visited in sorted key order so the expression is deterministic for a
// given input. Values are not validated here; Cost Explorer rejects unknown
// services, regions and tags on the remote side.
func BuildFilter(params map[string]string) *costexplorertypes.Expression {
	var predicates []costexplorertypes.Expression

	if services, ok := params["services"]; ok {
		predicates = append(predicates, costexplorertypes.Expression{
			Dimensions: &costexplorertypes.DimensionValues{
				Key:    costexplorertypes.DimensionService,
				Values: strings.Split(services, ","),
			},
		})
	}

	if regions, ok := params["regions"]; ok {
		predicates = append(predicates, costexplorertypes.Expression{
			Dimensions: &costexplorertypes.DimensionValues{
				Key:    costexplorertypes.DimensionRegion,
				Values: strings.Split(regions, ","),
			},
		})
	}

	tagParams := []string{}
	for key := range params {
		if strings.HasPrefix(key, tagParamPrefix) {
			tagParams = append(tagParams, key)
		}
	}
	sort.Strings(tagParams)

	for _, key := range tagParams {
		predicates = append(predicates, costexplorertypes.Expression{
			Tags: &costexplorertypes.TagValues{
				Key:    aws.String(strings.TrimPrefix(key, tagParamPrefix)),
				Values: strings.Split(params[key], ","),
			},
		})
	}

	switch len(predicates) {
	case 0:
		return nil
	case 1:
		return &predicates[0]
	default:
		return &costexplorertypes.Expression{And: predicates}
	}
}

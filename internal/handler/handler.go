package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	costexplorertypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/costq/costq/internal/services/billing"
	"github.com/costq/costq/internal/services/table"
	"github.com/costq/costq/internal/types"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"

	noDataMessage = "No data found"
)

type BillingService interface {
	GetCostsByService(ctx context.Context, dateRange billing.DateRange, filter *costexplorertypes.Expression) (*costexplorer.GetCostAndUsageOutput, error)
}

// Handler answers one billing query per invocation: parse and validate the
// query parameters, build the filter, query Cost Explorer, flatten the
// response and format the body. It holds no per-request state and is safe for
// concurrent invocations.
type Handler struct {
	billingService BillingService
	now            func() time.Time
}

func NewHandler(billingService BillingService) *Handler {
	return &Handler{
		billingService: billingService,
		now:            time.Now,
	}
}

// Handle implements the serverless invocation contract. All failures are
// encoded in the response: 400 for invalid dates, 500 for everything past
// validation. The returned error is always nil so the hosting platform never
// retries or rewraps the response.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters
	if params == nil {
		params = map[string]string{}
	}

	dateRange, err := billing.ResolveDateRange(params, h.now())
	if err != nil {
		return errorResponse(400, fmt.Sprintf("Invalid date: %s", err)), nil
	}

	filter := billing.BuildFilter(params)

	output, err := h.billingService.GetCostsByService(ctx, dateRange, filter)
	if err != nil {
		slog.Error("cost query failed", "error", err)
		return errorResponse(500, err.Error()), nil
	}

	costs, err := billing.FlattenResults(output)
	if err != nil {
		slog.Error("failed to flatten cost results", "error", err)
		return errorResponse(500, err.Error()), nil
	}

	format := strings.ToLower(params["format"])
	if format == "table" {
		body := noDataMessage
		if len(costs) > 0 {
			body = table.Render(costs)
		}
		return response(200, contentTypeText, body), nil
	}

	var body []byte
	if len(costs) > 0 {
		body, err = json.Marshal(map[string][]types.ServiceCost{"data": costs})
	} else {
		body, err = json.Marshal(map[string]string{"message": noDataMessage})
	}
	if err != nil {
		return errorResponse(500, err.Error()), nil
	}

	return response(200, contentTypeJSON, string(body)), nil
}

func response(statusCode int, contentType, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": contentType},
		Body:       body,
	}
}

func errorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return response(statusCode, contentTypeJSON, string(body))
}

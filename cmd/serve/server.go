package serve

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/costq/costq/internal/handler"
	"github.com/costq/costq/internal/metrics"
	"github.com/fatih/color"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerOpts struct {
	Port string
}

// Server is a local harness around the serverless handler: it translates echo
// requests into the handler's event shape and writes the handler's response
// back verbatim, so local behavior matches the deployed function.
type Server struct {
	requestHandler *handler.Handler

	port string
}

func NewServer(requestHandler *handler.Handler, opts ServerOpts) *Server {
	return &Server{
		requestHandler: requestHandler,

		port: opts.Port,
	}
}

func (s *Server) Run() error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestMetrics)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":    "healthy",
			"service":   "costq",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/costs", s.handleGetCosts)

	serverAddr := fmt.Sprintf("localhost:%s", s.port)
	fullURL := fmt.Sprintf("http://%s/costs", serverAddr)
	fmt.Printf("\ncostq is available at %s\n", color.New(color.FgGreen).Sprint(fullURL))

	return e.Start(serverAddr)
}

func (s *Server) handleGetCosts(c echo.Context) error {
	params := map[string]string{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	response, err := s.requestHandler.Handle(c.Request().Context(), events.APIGatewayProxyRequest{
		QueryStringParameters: params,
	})
	if err != nil {
		// The handler encodes all failures in the response; this is unreachable.
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	contentType := response.Headers["Content-Type"]
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}

	return c.Blob(response.StatusCode, contentType, []byte(response.Body))
}

// requestMetrics records served requests by response status.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		metrics.CountRequest(strconv.Itoa(c.Response().Status))
		return err
	}
}

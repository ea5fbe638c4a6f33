// Package hello implements the function handler that reports its invocation
// metadata and environment-derived configuration as JSON.
package hello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/invocation"
)

const (
	// Message is the fixed greeting in every response body.
	Message = "Hello World from Lambda with Environment Variables!"

	// TimestampLayout is ISO-8601 with microseconds and an explicit +00:00 offset.
	TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

	contentType = "application/json"
)

// Body is the JSON document carried in the response body.
type Body struct {
	Message              string               `json:"message"`
	Timestamp            string               `json:"timestamp"`
	FunctionInfo         FunctionInfo         `json:"function_info"`
	EnvironmentVariables EnvironmentVariables `json:"environment_variables"`
	VPCInfo              VPCInfo              `json:"vpc_info"`
}

// FunctionInfo reports the invocation metadata.
type FunctionInfo struct {
	Name        string `json:"name"`
	MemoryLimit int    `json:"memory_limit"`
	RequestID   string `json:"request_id"`
}

// EnvironmentVariables groups the environment-derived settings.
type EnvironmentVariables struct {
	Database Database `json:"database"`
	Buckets  Buckets  `json:"buckets"`
}

// Database holds DB_HOST and DB_PORT.
type Database struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// Buckets holds DATA_BUCKET and DEPLOYMENT_BUCKET.
type Buckets struct {
	DataBucket       string `json:"data_bucket"`
	DeploymentBucket string `json:"deployment_bucket"`
}

// VPCInfo carries the region. A nil Region encodes as null when AWS_REGION is unset.
type VPCInfo struct {
	Region *string `json:"region"`
}

// Handler builds the response. The zero value is not usable; call New.
type Handler struct {
	now    func() time.Time
	lookup config.LookupFunc
	logger *zap.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup config.LookupFunc) Option {
	return func(h *Handler) { h.lookup = lookup }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// New returns a Handler reading the process environment and wall clock.
func New(opts ...Option) *Handler {
	h := &Handler{
		now:    time.Now,
		lookup: os.LookupEnv,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is the function entrypoint. The event is accepted but never inspected.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	info, ok := invocation.FromContext(ctx)
	if !ok {
		h.logger.Debug("invocation metadata unavailable")
	}

	body, err := json.Marshal(h.Build(info))
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("marshal body: %w", err)
	}

	h.logger.Debug("invocation handled",
		zap.String("request_id", info.RequestID),
		zap.String("function_name", info.FunctionName))

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": contentType},
		Body:       string(body),
	}, nil
}

// Build assembles the body for info from the current environment and clock.
func (h *Handler) Build(info invocation.Info) Body {
	cfg := config.FunctionFromLookup(h.lookup)

	return Body{
		Message:   Message,
		Timestamp: h.now().UTC().Format(TimestampLayout),
		FunctionInfo: FunctionInfo{
			Name:        info.FunctionName,
			MemoryLimit: info.MemoryLimitMB,
			RequestID:   info.RequestID,
		},
		EnvironmentVariables: EnvironmentVariables{
			Database: Database{Host: cfg.DBHost, Port: cfg.DBPort},
			Buckets: Buckets{
				DataBucket:       cfg.DataBucket,
				DeploymentBucket: cfg.DeploymentBucket,
			},
		},
		VPCInfo: VPCInfo{Region: cfg.Region},
	}
}

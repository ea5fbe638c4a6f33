// Command invoke runs the hello handler once with a mock invocation context and
// prints the response with its body expanded, for manual testing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/hello"
	"github.com/jokerlin/lambda-env/internal/invocation"
	"github.com/jokerlin/lambda-env/internal/logging"
)

// defaultEnv is applied before the handler runs unless --no-defaults is given.
var defaultEnv = map[string]string{
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DATA_BUCKET":       "test-data-bucket",
	"DEPLOYMENT_BUCKET": "test-deployment-bucket",
	"AWS_REGION":        "us-east-2",
}

type options struct {
	functionName string
	memoryMB     int
	requestID    string
	functionARN  string
	eventPath    string
	envFile      string
	noDefaults   bool
	logLevel     string
}

// prettyResponse is the printed form: body is re-parsed rather than left as a string.
type prettyResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       json.RawMessage   `json:"body"`
}

func newRootCmd(out io.Writer, setenv func(key, value string) error) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke the hello handler locally with a mock context",
		Long: `invoke sets the test environment variables, builds a mock invocation
context and calls the hello handler once. The response is printed with its
JSON body expanded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, setenv, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.functionName, "function-name", config.DefaultFunctionName, "Function name reported in function_info")
	flags.IntVar(&opts.memoryMB, "memory", config.DefaultMemoryLimitMB, "Memory limit in MB reported in function_info")
	flags.StringVar(&opts.requestID, "request-id", "test-request-id-12345", "Request id; empty generates a UUID")
	flags.StringVar(&opts.functionARN, "function-arn", "arn:aws:lambda:us-east-2:123456789012:function:test-function", "Invoked function ARN")
	flags.StringVarP(&opts.eventPath, "event", "e", "", "Path to a JSON event file (default {})")
	flags.StringVar(&opts.envFile, "env-file", "", "YAML file of environment variables applied after the defaults")
	flags.BoolVar(&opts.noDefaults, "no-defaults", false, "Do not set the built-in test environment")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	return cmd
}

func run(ctx context.Context, out io.Writer, setenv func(key, value string) error, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(opts.logLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	env := map[string]string{}
	if !opts.noDefaults {
		for k, v := range defaultEnv {
			env[k] = v
		}
	}
	if opts.envFile != "" {
		fileEnv, err := config.LoadEnvFile(opts.envFile)
		if err != nil {
			return err
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	if err := config.Apply(env, setenv); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}

	event := json.RawMessage(`{}`)
	if opts.eventPath != "" {
		data, err := os.ReadFile(opts.eventPath)
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("event %s is not valid JSON", opts.eventPath)
		}
		event = data
	}

	requestID := opts.requestID
	if requestID == "" {
		requestID = invocation.NewRequestID()
	}
	ctx = invocation.NewContext(ctx, invocation.Info{
		FunctionName:       opts.functionName,
		MemoryLimitMB:      opts.memoryMB,
		RequestID:          requestID,
		InvokedFunctionARN: opts.functionARN,
	})

	logger.Debug("invoking handler", zap.String("request_id", requestID), zap.Int("env_vars", len(env)))

	resp, err := hello.New(hello.WithLogger(logger)).Handle(ctx, event)
	if err != nil {
		return fmt.Errorf("handler: %w", err)
	}

	pretty, err := json.MarshalIndent(prettyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       json.RawMessage(resp.Body),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}

	_, err = fmt.Fprintln(out, string(pretty))
	return err
}

func main() {
	if err := newRootCmd(os.Stdout, os.Setenv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "invoke:", err)
		os.Exit(1)
	}
}

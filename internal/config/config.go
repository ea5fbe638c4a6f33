package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder is reported for any expected variable that is not set.
const Placeholder = "N/A"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Function holds the values the handler reports back to the caller.
type Function struct {
	DBHost           string
	DBPort           string
	DataBucket       string
	DeploymentBucket string

	// Region has no placeholder; nil means AWS_REGION was not set.
	Region *string
}

// FunctionFromEnv resolves Function from the process environment. It is not
// memoized so every invocation sees the current environment.
func FunctionFromEnv() Function {
	return FunctionFromLookup(os.LookupEnv)
}

// FunctionFromLookup resolves Function through lookup.
func FunctionFromLookup(lookup LookupFunc) Function {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Function{
		DBHost:           valueOrPlaceholder(lookup, "DB_HOST"),
		DBPort:           valueOrPlaceholder(lookup, "DB_PORT"),
		DataBucket:       valueOrPlaceholder(lookup, "DATA_BUCKET"),
		DeploymentBucket: valueOrPlaceholder(lookup, "DEPLOYMENT_BUCKET"),
	}
	if region, ok := lookup("AWS_REGION"); ok {
		cfg.Region = &region
	}
	return cfg
}

func valueOrPlaceholder(lookup LookupFunc, key string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return Placeholder
}

// Local holds settings for the local harnesses (HTTP server and invoke CLI).
type Local struct {
	Port          string
	FunctionName  string
	MemoryLimitMB int
	LogLevel      string
}

// Defaults mirror the mock context used for manual testing.
const (
	DefaultPort          = "8080"
	DefaultFunctionName  = "my-local-hello-world-function"
	DefaultMemoryLimitMB = 256
	DefaultLogLevel      = "info"
)

// LocalFromEnv resolves Local from the process environment.
func LocalFromEnv() Local {
	return LocalFromLookup(os.LookupEnv)
}

// LocalFromLookup resolves Local through lookup.
func LocalFromLookup(lookup LookupFunc) Local {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	return Local{
		Port:          stringOrDefault(get("PORT"), DefaultPort),
		FunctionName:  stringOrDefault(get("AWS_LAMBDA_FUNCTION_NAME"), DefaultFunctionName),
		MemoryLimitMB: parseIntOrDefault(get("AWS_LAMBDA_FUNCTION_MEMORY_SIZE"), DefaultMemoryLimitMB),
		LogLevel:      stringOrDefault(get("LOG_LEVEL"), DefaultLogLevel),
	}
}

func stringOrDefault(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	return raw
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// LoadEnvFile reads a flat YAML mapping of variable name to value.
func LoadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", path, err)
	}

	env := make(map[string]string, len(raw))
	for key, node := range raw {
		n := &node
		if n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
		}
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("env file %s: %s must be a scalar", path, key)
		}
		// Values are kept as written so 05432 or 0x1F reach the environment untouched.
		if n.Tag == "!!null" {
			env[key] = ""
			continue
		}
		env[key] = n.Value
	}
	return env, nil
}

// Apply writes every entry of env through setenv, stopping at the first error.
func Apply(env map[string]string, setenv func(key, value string) error) error {
	if setenv == nil {
		setenv = os.Setenv
	}
	for key, value := range env {
		if err := setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/hello"
)

type printed struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       hello.Body        `json:"body"`
}

func execute(t *testing.T, args ...string) (printed, string) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out, func(k, v string) error {
		t.Setenv(k, v)
		return nil
	})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	var p printed
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	return p, out.String()
}

func TestInvokeDefaults(t *testing.T) {
	p, raw := execute(t)

	assert.Equal(t, 200, p.StatusCode)
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, p.Headers)
	assert.Equal(t, "localhost", p.Body.EnvironmentVariables.Database.Host)
	assert.Equal(t, "5432", p.Body.EnvironmentVariables.Database.Port)
	assert.Equal(t, "test-data-bucket", p.Body.EnvironmentVariables.Buckets.DataBucket)
	assert.Equal(t, "test-deployment-bucket", p.Body.EnvironmentVariables.Buckets.DeploymentBucket)
	require.NotNil(t, p.Body.VPCInfo.Region)
	assert.Equal(t, "us-east-2", *p.Body.VPCInfo.Region)
	assert.Equal(t, hello.FunctionInfo{
		Name:        "my-local-hello-world-function",
		MemoryLimit: 256,
		RequestID:   "test-request-id-12345",
	}, p.Body.FunctionInfo)

	_, err := time.Parse(time.RFC3339Nano, p.Body.Timestamp)
	assert.NoError(t, err)
	assert.Contains(t, raw, "\n  \"statusCode\": 200", "output is indented by two spaces")
}

func TestInvokeFlagsAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_HOST: db.example.com\nDATA_BUCKET: other-bucket\n"), 0o600))
	eventFile := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(eventFile, []byte(`{"name":"ignored"}`), 0o600))

	p, _ := execute(t,
		"--env-file", envFile,
		"--event", eventFile,
		"--function-name", "other-fn",
		"--memory", "1024",
		"--request-id", "",
	)

	assert.Equal(t, "db.example.com", p.Body.EnvironmentVariables.Database.Host)
	assert.Equal(t, "5432", p.Body.EnvironmentVariables.Database.Port)
	assert.Equal(t, "other-bucket", p.Body.EnvironmentVariables.Buckets.DataBucket)
	assert.Equal(t, "other-fn", p.Body.FunctionInfo.Name)
	assert.Equal(t, 1024, p.Body.FunctionInfo.MemoryLimit)
	_, err := uuid.Parse(p.Body.FunctionInfo.RequestID)
	assert.NoError(t, err, "empty request id is replaced by a UUID")
}

func TestInvokeRejectsBadEvent(t *testing.T) {
	eventFile := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventFile, []byte(`{`), 0o600))

	cmd := newRootCmd(&bytes.Buffer{}, func(k, v string) error {
		t.Setenv(k, v)
		return nil
	})
	cmd.SetArgs([]string{"--event", eventFile})
	assert.Error(t, cmd.Execute())
}

func TestInvokeMissingEnvFile(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, func(k, v string) error {
		t.Setenv(k, v)
		return nil
	})
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, cmd.Execute(), os.ErrNotExist)
}

func TestInvokeNoDefaults(t *testing.T) {
	for k := range defaultEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	envFile := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_HOST: only-host\n"), 0o600))

	p, _ := execute(t, "--no-defaults", "--env-file", envFile)

	assert.Equal(t, "only-host", p.Body.EnvironmentVariables.Database.Host)
	assert.Equal(t, config.Placeholder, p.Body.EnvironmentVariables.Database.Port)
	assert.Equal(t, config.Placeholder, p.Body.EnvironmentVariables.Buckets.DataBucket)
	assert.Equal(t, config.Placeholder, p.Body.EnvironmentVariables.Buckets.DeploymentBucket)
	assert.Nil(t, p.Body.VPCInfo.Region)
}

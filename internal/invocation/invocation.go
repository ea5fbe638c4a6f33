// Package invocation carries the per-call metadata a function handler reports:
// function name, memory limit and request id.
package invocation

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

// Info describes the current invocation.
type Info struct {
	FunctionName       string
	MemoryLimitMB      int
	RequestID          string
	InvokedFunctionARN string
}

type contextKey struct{}

// NewContext attaches info to ctx. Local harnesses use it in place of the
// metadata the Lambda runtime would provide.
func NewContext(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext returns the Info attached with NewContext, falling back to the
// Lambda runtime's context and environment. ok is false when neither exists.
func FromContext(ctx context.Context) (Info, bool) {
	if info, ok := ctx.Value(contextKey{}).(Info); ok {
		return info, true
	}

	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return Info{}, false
	}
	return Info{
		FunctionName:       lambdacontext.FunctionName,
		MemoryLimitMB:      lambdacontext.MemoryLimitInMB,
		RequestID:          lc.AwsRequestID,
		InvokedFunctionARN: lc.InvokedFunctionArn,
	}, true
}

// NewRequestID returns a random request id for invocations that arrive without one.
func NewRequestID() string {
	return uuid.NewString()
}

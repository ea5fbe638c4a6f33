package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/hello"
	"github.com/jokerlin/lambda-env/internal/invocation"
)

const (
	maxEventSize    = 1 << 20 // 1 MiB
	requestIDHeader = "X-Amz-Request-Id"
)

// Hello invokes h as if the function had been called, using the request body
// as the event and local for the function metadata.
func Hello(h *hello.Handler, local config.Local, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventSize))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
			return
		}

		event := json.RawMessage(`{}`)
		if len(body) > 0 {
			event = body
		}

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = invocation.NewRequestID()
		}

		ctx := invocation.NewContext(c.Request.Context(), invocation.Info{
			FunctionName:  local.FunctionName,
			MemoryLimitMB: local.MemoryLimitMB,
			RequestID:     requestID,
		})

		resp, err := h.Handle(ctx, event)
		if err != nil {
			logger.Error("handler failed", zap.String("request_id", requestID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invocation failed"})
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Header(requestIDHeader, requestID)
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], []byte(resp.Body))
	}
}

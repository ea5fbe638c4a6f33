package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/handler"
	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/hello"
)

// StartServer runs the local HTTP harness on local.Port.
func StartServer(local config.Local, logger *zap.Logger) error {
	r := NewRouter(local, logger)

	logger.Info("server listening", zap.String("port", local.Port))
	return r.Run(":" + local.Port)
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(local config.Local, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	RegisterRoutes(r, local, logger)
	return r
}

// RegisterRoutes registers every route of the harness on r.
func RegisterRoutes(r *gin.Engine, local config.Local, logger *zap.Logger) {
	h := hello.New(hello.WithLogger(logger))

	r.GET("/", handler.Index)
	r.GET("/ping", handler.Ping)
	r.Any("/hello", handler.Hello(h, local, logger))
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

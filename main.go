package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/api"
	"github.com/jokerlin/lambda-env/internal/config"
	"github.com/jokerlin/lambda-env/internal/logging"
)

func main() {
	local := config.LocalFromEnv()

	logger, err := logging.New(local.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 本地调试服务器，默认监听 8080 端口
	if err := api.StartServer(local, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

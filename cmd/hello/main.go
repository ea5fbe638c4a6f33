package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/jokerlin/lambda-env/internal/hello"
	"github.com/jokerlin/lambda-env/internal/logging"
)

func main() {
	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting function", zap.String("handler", "hello"))
	lambda.Start(hello.New(hello.WithLogger(logger)).Handle)
}

// Package main runs the HelloWorld function on AWS Lambda behind API Gateway.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sebasr/hello-function/internal/config"
	"github.com/sebasr/hello-function/internal/handlers"
	"github.com/sebasr/hello-function/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging)
	lambda.Start(handlers.LambdaHandler(logger))
}

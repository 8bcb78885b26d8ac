// Recommendation Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"psp-advisor/internal/config"
	"psp-advisor/internal/handlers"
	"psp-advisor/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	deps, err := handlers.NewDependencies(context.Background(), cfg)
	if err != nil {
		utils.GetLogger().Fatal("Failed to create handler", zap.Error(err))
	}
	defer deps.Close()

	handler := handlers.NewRecommendHandler(deps.Service)

	lambda.Start(handler.Handle)
}

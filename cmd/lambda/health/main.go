// Health Check Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"psp-advisor/internal/config"
	"psp-advisor/internal/handlers"
	"psp-advisor/internal/services/database"
	"psp-advisor/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	var db *database.DB
	if cfg.DatabaseConfigured() {
		db, err = database.New(cfg)
		if err != nil {
			// Reported as disconnected rather than failing the cold start.
			utils.GetLogger().Warn("Could not connect to database", zap.Error(err))
			db = nil
		} else {
			defer db.Close()
		}
	}

	handler := handlers.NewHealthHandler(db)

	lambda.Start(handler.Handle)
}

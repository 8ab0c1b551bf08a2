// @title BrightSprout API
// @version 1.0
// @description Backend for the BrightSprout learning app: parent and child accounts, AI-generated assessments and personalized learning paths.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"brightsprout_backend/internal/app"
	"brightsprout_backend/internal/config"
	"brightsprout_backend/pkg/configwatcher"
	"brightsprout_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			logger.Log.Info("Config reloaded")
			*cfg = *c
		}
	})

	application.Run()
}

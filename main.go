package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/foodtruckos/backend/config"
	"github.com/foodtruckos/backend/router"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("invalid configuration: %v", err)
	}

	db, err := config.InitDB(cfg.DatabaseDSN)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to connect to database: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	provider := services.NewStripeProvider(cfg.StripeSecretKey)

	r := router.SetupRouter(db, cfg, provider)

	utils.InfoLogger.Printf("listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

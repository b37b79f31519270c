package main

import (
	"log"
	"os"
	"time"

	"insurance-app/config"
	"insurance-app/database"
	routes "insurance-app/internal/app/http"
	"insurance-app/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	token.Init(config.JWT_SECRET, config.TOKEN_TTL)

	if err := os.MkdirAll(config.UPLOAD_DIR, 0o755); err != nil {
		log.Fatal("Failed to create upload directory: ", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}

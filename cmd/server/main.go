package main

import (
	"log"
	"time"

	"church-reconciliation-backend/internal/config"
	"church-reconciliation-backend/internal/models"
	"church-reconciliation-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	db := config.InitDB()

	db.AutoMigrate(
		&models.BankStatementLine{},
		&models.FinancialTransaction{},
		&models.ReconciliationBatch{},
		&models.BatchLineLink{},
		&models.ReconciliationAuditLog{},
	)

	redisClient := config.InitRedis()

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Church-Id", "X-Branch-Id", "X-User-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, redisClient)

	r.Run(":8080")
}

package routes

import (
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"church-reconciliation-backend/internal/cache"
	"church-reconciliation-backend/internal/config"
	handler "church-reconciliation-backend/internal/handlers"
	"church-reconciliation-backend/internal/repository"
	service "church-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client) {
	registerValidations()

	lineRepo := repository.NewStatementLineRepository(db)
	txRepo := repository.NewFinancialTransactionRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	var invalidator cache.Invalidator = cache.NoopInvalidator{}
	var locker *redislock.Client
	if redisClient != nil {
		invalidator = cache.NewRedisInvalidator(redisClient)
		locker = redislock.New(redisClient)
	}

	reconService := service.NewService(
		lineRepo,
		txRepo,
		batchRepo,
		invalidator,
		locker,
		config.NoisePatterns(),
	)

	reconHandler := handler.NewReconciliationHandler(reconService)
	statementHandler := handler.NewStatementHandler(lineRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Reconciliation workflow routes
	recon := api.Group("/conciliacao")
	recon.GET("/candidates", reconHandler.ListCandidates)
	recon.POST("/evaluate", reconHandler.Evaluate)
	recon.POST("/commit", reconHandler.Commit)
	recon.GET("/pending", reconHandler.ListPending)
	recon.GET("/stats", reconHandler.GetStats)
	recon.GET("/batches/:id", reconHandler.GetBatch)

	// Statement import routes
	statements := api.Group("/statements")
	{
		statements.POST("/upload", statementHandler.Upload)
	}
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "", service.FilterAll, service.FilterCredit, service.FilterDebit:
				return true
			}
			return false
		})
	}
}

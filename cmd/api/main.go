package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/The-Unpaid-Developers/solution-review-service/api/swagger" // swagger docs
	"github.com/The-Unpaid-Developers/solution-review-service/internal/config"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/database"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/handler"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/websocket"
)

// @title           Solution Review API
// @version         1.0
// @description     API for authoring and governing solution review documents.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		// Environment may already be populated by the deployment
	}

	log := config.NewLogger()

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	reviewRepo := repository.NewReviewRepository(db)
	systemRepo := repository.NewSystemRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	reviewService := service.NewReviewService(reviewRepo, auditRepo, txManager, wsHub, log)
	systemService := service.NewSystemService(systemRepo)
	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo)
	lookupService := service.NewLookupService(lookupRepo)
	reportService := service.NewReportService(reviewRepo)

	// Initialize Handlers
	reviewHandler := handler.NewReviewHandler(reviewService)
	systemHandler := handler.NewSystemHandler(systemService, reviewService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	lookupHandler := handler.NewLookupHandler(lookupService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	reviewHandler.RegisterRoutes(router.Group(""))
	systemHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	lookupHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")
	log.Infof("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

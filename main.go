package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/internal/ai"
	"github.com/healthfolio/backend/internal/audit"
	"github.com/healthfolio/backend/internal/blobstore"
	"github.com/healthfolio/backend/internal/config"
	"github.com/healthfolio/backend/internal/extract"
	"github.com/healthfolio/backend/internal/handler"
	"github.com/healthfolio/backend/internal/middleware"
	"github.com/healthfolio/backend/internal/pdf"
	"github.com/healthfolio/backend/internal/repository"
	"github.com/healthfolio/backend/internal/security"
	"github.com/healthfolio/backend/internal/service"
)

var (
	logger *zap.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
)

func main() {
	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Test database connection
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Initialize external clients
	openAIClient, err := ai.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
	}

	documentStore, err := blobstore.NewAzureBlobStore(
		cfg.Storage.AccountName,
		cfg.Storage.AccountKey,
		cfg.Storage.DocumentContainer,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage client", zap.Error(err))
	}

	// Optional at-rest encryption for extracted report text
	var encryptor *security.Encryptor
	if cfg.Security.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.Security.EncryptionKey)
		if err != nil {
			logger.Fatal("Failed to decode encryption key", zap.Error(err))
		}
		encryptor, err = security.NewEncryptor(key)
		if err != nil {
			logger.Fatal("Failed to initialize encryptor", zap.Error(err))
		}
		logger.Info("Extracted text encryption enabled")
	}

	// Initialize repositories
	reportRepo := repository.NewReportRepository(pool, encryptor, logger)
	lifestyleRepo := repository.NewLifestyleRepository(pool, logger)
	symptomRepo := repository.NewSymptomRepository(pool, logger)
	goalRepo := repository.NewGoalRepository(pool, logger)
	reminderRepo := repository.NewReminderRepository(pool, logger)

	// Initialize services
	analyzer := service.NewReportAnalyzer(openAIClient, logger)
	extractor := extract.NewPlainTextExtractor()
	pdfGenerator := pdf.NewPDFGenerator(logger)

	reportService := service.NewReportService(
		reportRepo,
		analyzer,
		extractor,
		documentStore,
		pdfGenerator,
		logger,
	)
	lifestyleService := service.NewLifestyleService(lifestyleRepo, logger)
	symptomService := service.NewSymptomService(symptomRepo, logger)
	goalService := service.NewGoalService(goalRepo, logger)
	reminderService := service.NewReminderService(reminderRepo, logger)
	dashboardService := service.NewDashboardService(reportRepo, lifestyleRepo, logger)
	exportService := service.NewExportService(
		reportRepo,
		lifestyleRepo,
		symptomRepo,
		goalRepo,
		reminderRepo,
		logger,
	)

	// Audit logger for health-data access trails
	auditLogger := audit.NewLogger(pool, logger)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(pool, logger)
	reportHandler := handler.NewReportHandler(reportService, auditLogger, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	lifestyleHandler := handler.NewLifestyleHandler(lifestyleService, logger)
	symptomHandler := handler.NewSymptomHandler(symptomService, logger)
	trackingHandler := handler.NewTrackingHandler(goalService, reminderService, logger)
	exportHandler := handler.NewExportHandler(exportService, auditLogger, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register routes
	r.GET("/health", healthHandler.GetHealth)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reports", reportHandler.UploadReport)
		v1.GET("/reports", reportHandler.ListReports)
		v1.GET("/reports/:id/pdf", reportHandler.DownloadReportPDF)

		v1.GET("/dashboard/summary", dashboardHandler.GetSummary)

		v1.PUT("/lifestyle/answers", lifestyleHandler.SaveSection)
		v1.GET("/lifestyle/score", lifestyleHandler.GetScore)
		v1.GET("/lifestyle/history", lifestyleHandler.GetHistory)
		v1.GET("/lifestyle/insights", lifestyleHandler.GetInsights)

		v1.POST("/symptoms", symptomHandler.LogSymptom)
		v1.GET("/symptoms", symptomHandler.ListSymptoms)
		v1.GET("/symptoms/patterns", symptomHandler.GetPatterns)

		v1.POST("/goals", trackingHandler.CreateGoal)
		v1.GET("/goals", trackingHandler.ListGoals)
		v1.POST("/goals/:id/progress", trackingHandler.UpdateGoalProgress)

		v1.POST("/reminders", trackingHandler.CreateReminder)
		v1.GET("/reminders", trackingHandler.ListReminders)
		v1.DELETE("/reminders/:id", trackingHandler.DeactivateReminder)
		v1.POST("/reminders/:id/taken", trackingHandler.LogTaken)

		v1.GET("/export", exportHandler.Export)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connections
	pool.Close()

	logger.Info("Server exited")
}

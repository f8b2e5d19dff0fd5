package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"booked-barber.backend/internal/config"
	"booked-barber.backend/internal/infrastructure/gateways"
	"booked-barber.backend/internal/infrastructure/jobs"
	"booked-barber.backend/internal/infrastructure/models"
	"booked-barber.backend/internal/infrastructure/repositories"
	"booked-barber.backend/internal/interfaces/http/handlers"
	"booked-barber.backend/internal/usecases"
	"booked-barber.backend/pkg/jwt"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
		if err := db.AutoMigrate(
			&models.ProcessorConnection{},
			&models.ProcessorHealth{},
			&models.HybridPaymentConfig{},
			&models.PaymentModeHistory{},
			&models.ExternalTransaction{},
			&models.PlatformCollection{},
			&models.ProcessorFeeConfig{},
		); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Repositories
	connRepo := repositories.NewProcessorConnectionRepository(db)
	healthRepo := repositories.NewProcessorHealthRepository(db)
	configRepo := repositories.NewHybridConfigRepository(db)
	historyRepo := repositories.NewPaymentModeHistoryRepository(db)
	txRepo := repositories.NewExternalTransactionRepository(db)
	collectionRepo := repositories.NewPlatformCollectionRepository(db)
	feeConfigRepo := repositories.NewFeeConfigRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Gateways
	gatewayFactory := gateways.NewFactory(gatewayConfigs(cfg))
	collector := gateways.NewHTTPCollector(cfg.Gateways.Collector.BaseURL, cfg.Gateways.Collector.APIKey, cfg.Gateways.Timeout)

	// Usecases
	clock := usecases.SystemClock()
	feeUsecase := usecases.NewFeeUsecase(feeConfigRepo)
	commissionUsecase := usecases.NewCommissionUsecase()
	healthTracker := usecases.NewHealthTracker(healthRepo)
	resolver := usecases.NewPaymentModeResolver(healthTracker)
	router := usecases.NewPaymentRouter(configRepo, connRepo, txRepo, commissionUsecase, resolver, healthTracker, gatewayFactory, uow, clock)
	configUsecase := usecases.NewHybridConfigUsecase(configRepo, historyRepo, uow, clock)
	connectionUsecase := usecases.NewConnectionUsecase(connRepo, clock)
	collectionUsecase := usecases.NewCollectionUsecase(txRepo, collectionRepo, configRepo, collector, usecases.NewLogAlerter(), uow, clock, cfg.Collection.MinCents)

	// Handlers
	deps := routeDeps{
		paymentHandler:    handlers.NewPaymentHandler(router),
		feeHandler:        handlers.NewFeeHandler(feeUsecase, feeConfigRepo),
		configHandler:     handlers.NewPaymentConfigHandler(configUsecase),
		processorHandler:  handlers.NewProcessorHandler(connectionUsecase, healthTracker),
		collectionHandler: handlers.NewCollectionHandler(collectionUsecase),
		jwtService:        jwtService,
	}

	// Background collection job
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	collectionJob := jobs.NewCollectionJob(collectionUsecase, cfg.Collection.Interval)
	go collectionJob.Start(jobCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info(context.Background(), "Shutting down")
		collectionJob.Stop()
		cancelJobs()
		os.Exit(0)
	}()

	r := setupRouter(deps)
	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}

func gatewayConfigs(cfg *config.Config) []gateways.GatewayConfig {
	timeout := cfg.Gateways.Timeout
	return []gateways.GatewayConfig{
		{Processor: "STRIPE", BaseURL: cfg.Gateways.Stripe.BaseURL, APIKey: cfg.Gateways.Stripe.APIKey, Timeout: timeout},
		{Processor: "SQUARE", BaseURL: cfg.Gateways.Square.BaseURL, APIKey: cfg.Gateways.Square.APIKey, Timeout: timeout},
		{Processor: "PAYPAL", BaseURL: cfg.Gateways.PayPal.BaseURL, APIKey: cfg.Gateways.PayPal.APIKey, Timeout: timeout},
		{Processor: "CLOVER", BaseURL: cfg.Gateways.Clover.BaseURL, APIKey: cfg.Gateways.Clover.APIKey, Timeout: timeout},
		{Processor: "PLATFORM", BaseURL: cfg.Gateways.Platform.BaseURL, APIKey: cfg.Gateways.Platform.APIKey, Timeout: timeout},
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ahorros.backend/internal/config"
	"ahorros.backend/internal/domain/badges"
	"ahorros.backend/internal/domain/progress"
	"ahorros.backend/internal/infrastructure/cache"
	"ahorros.backend/internal/infrastructure/datasources"
	"ahorros.backend/internal/infrastructure/jobs"
	"ahorros.backend/internal/infrastructure/metrics"
	"ahorros.backend/internal/infrastructure/receipts"
	"ahorros.backend/internal/infrastructure/repositories"
	"ahorros.backend/internal/interfaces/http/handlers"
	"ahorros.backend/internal/interfaces/http/middleware"
	"ahorros.backend/internal/usecases"
	"ahorros.backend/pkg/jwt"
	"ahorros.backend/pkg/logger"
	"ahorros.backend/pkg/redis"
)

const (
	serviceName    = "ahorros-backend"
	serviceVersion = "1.0.0"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.NewConnection
	registerer = prometheus.DefaultRegisterer
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
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
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "Redis disabled: ranking cache and deposit idempotency are off")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	decimal.MarshalJSONWithoutQuotes = true

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(ctx, "Database connected", zap.String("driver", cfg.Database.Driver))

	if err := os.MkdirAll(cfg.Receipts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipts directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, job := buildRouter(cfg, db)
	if job != nil {
		go job.Start(ctx)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		if job != nil {
			job.Stop()
		}
		cancel()
		os.Exit(0)
	}()

	logger.Info(ctx, "Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", cfg.Server.BaseURL+"/api"),
	)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *jobs.BadgeReevaluationJob) {
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	userRepo := repositories.NewUserRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	depositRepo := repositories.NewDepositRepository(db)
	uow := repositories.NewUnitOfWork(db)

	aggregator := progress.NewAggregator(cfg.Savings.DefaultGoal, cfg.Savings.InactivityWindow(), time.Now)
	evaluator := badges.NewEvaluator(time.Now)
	renderer := receipts.NewPDFRenderer(cfg.Receipts.Dir, cfg.Server.BaseURL, cfg.Receipts.PublicPath)
	rankingCache := cache.NewRankingCache(redis.GetClient(), cfg.Redis.RankingTTL)
	savingsMetrics := metrics.NewSavingsMetrics(registerer)
	depositFeed := handlers.NewDepositFeed()

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, cfg.Savings.DefaultPlan)
	userUsecase := usecases.NewUserUsecase(userRepo, depositRepo, uow, rankingCache)
	eventUsecase := usecases.NewEventUsecase(eventRepo, userRepo, depositRepo, uow, rankingCache)
	depositUsecase := usecases.NewDepositUsecase(
		depositRepo, userRepo, eventRepo,
		aggregator, evaluator, renderer, rankingCache, savingsMetrics, depositFeed,
		usecases.DepositUsecaseConfig{
			MinDeposit:  cfg.Savings.MinDeposit,
			CountryCode: cfg.Receipts.CountryCode,
		},
	)
	dashboardUsecase := usecases.NewDashboardUsecase(userRepo, eventRepo, depositRepo, aggregator, evaluator, rankingCache, savingsMetrics)

	checks := map[string]handlers.Pinger{"database": datasources.Ping(db)}
	if client := redis.GetClient(); client != nil {
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	healthHandler := handlers.NewHealthHandler(serviceName, serviceVersion, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.FrontendURL)
	registerInfraRoutes(r, infraDeps{
		healthHandler:  healthHandler,
		depositFeed:    depositFeed,
		receiptsDir:    cfg.Receipts.Dir,
		receiptsPrefix: cfg.Receipts.PublicPath,
	})
	registerAPIRoutes(r, routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase),
		userHandler:      handlers.NewUserHandler(userUsecase),
		eventHandler:     handlers.NewEventHandler(eventUsecase),
		depositHandler:   handlers.NewDepositHandler(depositUsecase),
		dashboardHandler: handlers.NewDashboardHandler(dashboardUsecase),
		healthHandler:    healthHandler,
		authMiddleware:   middleware.AuthMiddleware(jwtService, userUsecase),
		idempotencyTTL:   cfg.Redis.IdempotencyTTL,
	})

	var job *jobs.BadgeReevaluationJob
	if cfg.Savings.ReevaluationInterval > 0 {
		job = jobs.NewBadgeReevaluationJob(eventUsecase, dashboardUsecase, cfg.Savings.ReevaluationInterval)
	}
	return r, job
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmg-labs/incident-service/internal/config"
	v1 "github.com/rmg-labs/incident-service/internal/handler/http/v1"
	"github.com/rmg-labs/incident-service/internal/observability"
	"github.com/rmg-labs/incident-service/internal/provider"
	"github.com/rmg-labs/incident-service/internal/repository"
	"github.com/rmg-labs/incident-service/internal/service"
	"github.com/rmg-labs/incident-service/pkg/logger"
	"github.com/rmg-labs/incident-service/pkg/postgres"
	redisclient "github.com/rmg-labs/incident-service/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/rmg-labs/incident-service/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Incident Reporting Service API
// @version 1.0
// @description Incident reporting backend: accounts, incidents, pincode lookup.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента (хранилище сессий)
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация метрик
	metrics := observability.NewMetrics()

	// Инициализация репозиториев
	userRepo := repository.NewUserRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool)
	pincodeRepo := repository.NewPincodeRepository(dbpool)
	sessionStore := repository.NewSessionStore(redisClient)

	// Инициализация внешних провайдеров почтовых индексов в порядке приоритета
	providers := make([]service.PincodeProvider, 0, len(cfg.PincodeAPIURLs))
	for _, apiURL := range cfg.PincodeAPIURLs {
		providers = append(providers, provider.NewPostalPincodeClient(apiURL, cfg.PincodeTimeout))
	}

	// Инициализация сервисов
	userService := service.NewUserService(userRepo, sessionStore, log, cfg.SessionTTL)
	incidentService := service.NewIncidentService(incidentRepo, log, metrics)
	pincodeService := service.NewPincodeService(pincodeRepo, providers, log, metrics)

	// Инициализация хэндлеров
	handler := v1.NewHandler(userService, incidentService, pincodeService, log)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.RequestIDMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}

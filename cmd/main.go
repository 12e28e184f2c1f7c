package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkConflictsHandler "github.com/m04kA/MSH-ConflictService/internal/api/handlers/check_conflicts"
	healthHandler "github.com/m04kA/MSH-ConflictService/internal/api/handlers/health"
	"github.com/m04kA/MSH-ConflictService/internal/api/middleware"
	"github.com/m04kA/MSH-ConflictService/internal/config"
	orgPolicyCache "github.com/m04kA/MSH-ConflictService/internal/infra/cache/orgpolicy"
	lessonRepo "github.com/m04kA/MSH-ConflictService/internal/infra/storage/lesson"
	orgRepo "github.com/m04kA/MSH-ConflictService/internal/infra/storage/org"
	roomRepo "github.com/m04kA/MSH-ConflictService/internal/infra/storage/room"
	scheduleRepo "github.com/m04kA/MSH-ConflictService/internal/infra/storage/schedule"
	studentRepo "github.com/m04kA/MSH-ConflictService/internal/infra/storage/student"
	conflictsService "github.com/m04kA/MSH-ConflictService/internal/service/conflicts"
	"github.com/m04kA/MSH-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/MSH-ConflictService/pkg/logger"
	"github.com/m04kA/MSH-ConflictService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MSH-ConflictService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	orgRepository := orgRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	lessonRepository := lessonRepo.NewRepository(executor)
	roomRepository := roomRepo.NewRepository(executor)
	studentRepository := studentRepo.NewRepository(executor)

	// Политика организации читается на каждую проверку - кэшируем в Redis,
	// если включено
	var settingsPort conflictsService.SettingsPort = orgRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		settingsPort = orgPolicyCache.New(
			orgRepository,
			redisClient,
			time.Duration(cfg.Redis.PolicyTTLSec)*time.Second,
			log,
		)
		log.Info("Org policy cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.PolicyTTLSec)
	}

	// Инициализируем сервис проверки конфликтов
	conflictsSvc := conflictsService.NewService(
		settingsPort,
		orgRepository,
		scheduleRepository,
		lessonRepository,
		roomRepository,
		studentRepository,
		log,
	)
	conflictsSvc.SetTimeouts(
		time.Duration(cfg.Conflicts.GroupTimeout)*time.Second,
		time.Duration(cfg.Conflicts.StudentTimeout)*time.Second,
	)
	log.Info("Conflict engine initialized (group_timeout=%ds, student_timeout=%ds)",
		cfg.Conflicts.GroupTimeout, cfg.Conflicts.StudentTimeout)

	// Инициализируем handlers
	checkConflicts := checkConflictsHandler.NewHandler(conflictsSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoint (публичный)
	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix, все маршруты требуют X-Org-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Проверка конфликтов предлагаемого занятия
	api.HandleFunc("/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

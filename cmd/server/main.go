package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/habitkit/habit-api/internal/config"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/habitkit/habit-api/internal/handlers"
	"github.com/habitkit/habit-api/internal/logger"
	"github.com/habitkit/habit-api/internal/middleware"
	"github.com/habitkit/habit-api/internal/queue"
	"github.com/habitkit/habit-api/internal/reports"
	"github.com/habitkit/habit-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "habit-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Connect to database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_database")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
	}
	migrateCancel()
	zapLogger.Info("migrations_applied")

	// Connect to Redis for rate limiting
	redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisLimiter.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	// Connect to RabbitMQ for the streak repair queue (required)
	// Retry connection with exponential backoff to handle RabbitMQ startup delays
	const maxRetries = 10
	const initialDelay = 2 * time.Second
	var jobQueue queue.JobQueue
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err = queue.NewRabbitMQQueue(cfg.RabbitMQURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			defer func() {
				if err := jobQueue.Close(); err != nil {
					zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
				}
			}()
			break
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt)) // Exponential backoff
		if delay > 30*time.Second {
			delay = 30 * time.Second // Cap at 30 seconds
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
			zap.Int("max_retries", maxRetries),
			zap.Error(lastErr),
		)
	}

	// Initialize repositories
	habitRepo := database.NewHabitRepository(db)
	logRepo := database.NewHabitLogRepository(db)
	ratelimitConfigRepo := database.NewRatelimitConfigRepository(db)

	// Initialize the habit engine and reporting service
	engine := habits.NewService(habitRepo, logRepo, zapLogger,
		habits.WithRepairQueue(jobQueue),
	)
	reporter := reports.NewService(habitRepo, logRepo)

	// Initialize handlers
	habitHandler := handlers.NewHabitHandler(engine)
	logHandler := handlers.NewLogHandler(engine)
	reportHandler := handlers.NewReportHandler(reporter)
	healthChecker := handlers.NewHealthChecker(db, redisLimiter.Client(), jobQueue)

	// Setup router
	r := mux.NewRouter()

	zapLogger.Info("setting_up_middleware")

	// 0. OpenTelemetry tracing (if enabled)
	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("habit-api"))
		zapLogger.Info("otel_middleware_enabled")
	}
	// 1. Security headers (should be set on all responses)
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	// 2. CORS from FRONTEND_URL (comma-separated list of origins)
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	// Rate limit middleware (applied selectively to specific routes, not globally)
	defaultRate := cfg.RateLimit
	if defaultRate == "" {
		defaultRate = "10-S"
	}
	rateLimitReloader := middleware.NewRateLimitReloader(redisLimiter.Client(), ratelimitConfigRepo, defaultRate, zapLogger, 1*time.Minute)
	if rateLimitReloader == nil {
		zapLogger.Fatal("failed_to_create_rate_limit_reloader")
	}
	rateLimitMW := rateLimitReloader.Middleware()
	// 3. Request size limits (protects against DoS)
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	// 4. Content-Type validation for POST/PATCH/PUT requests
	r.Use(middleware.ContentType)
	// 5. Request timeout (30 seconds default)
	r.Use(middleware.Timeout(30 * time.Second))
	// 6. Error handler (catches panics)
	r.Use(middleware.ErrorHandler(zapLogger))
	// 7. Audit logging (for security events)
	r.Use(middleware.Audit(zapLogger))
	// 8. Logging (innermost, executes last before handler)
	r.Use(middleware.Logging(zapLogger))

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// API v1 routes require a resolved owner identity
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.OwnerContext())
	apiRouter.Use(rateLimitMW)

	habitsRouter := apiRouter.PathPrefix("/habits").Subrouter()
	habitHandler.RegisterRoutes(habitsRouter)
	logHandler.RegisterRoutes(habitsRouter)

	reportsRouter := apiRouter.PathPrefix("/reports").Subrouter()
	reportHandler.RegisterRoutes(reportsRouter)

	// Catch-all OPTIONS handler for preflight requests
	// The CORS middleware will have set headers before this is called
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Rate limit hot-reload loop
	reloadCtx, reloadCancel := context.WithCancel(context.Background())
	defer reloadCancel()
	go rateLimitReloader.Start(reloadCtx)

	// Start DLQ garbage collector if the queue implementation supports it
	// Run every hour, retain messages for 24 hours
	if dlqPurger, ok := jobQueue.(queue.DLQPurger); ok {
		dlqGC := queue.NewGarbageCollector(dlqPurger, 1*time.Hour, 24*time.Hour)
		go func() {
			if err := dlqGC.Start(reloadCtx); err != nil && err != context.Canceled {
				zapLogger.Error("dlq_garbage_collector_stopped_with_error", zap.Error(err))
			}
		}()
		zapLogger.Info("started_dlq_garbage_collector",
			zap.Duration("interval", 1*time.Hour),
			zap.Duration("retention", 24*time.Hour),
		)
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	reloadCancel()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// Only expose minimal version info (sanitized for security)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}

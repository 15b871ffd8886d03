package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"entryapi/internal/config"
	"entryapi/internal/database"
	handlers "entryapi/internal/http/handler"
	"entryapi/internal/http/middleware"
	"entryapi/internal/logger"
	"entryapi/internal/otel"
	"entryapi/internal/repository/postgres"
	"entryapi/internal/service"
)

// @title Entries API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Location: cfg.Location()})

	if err := cfg.Database.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to open database pool", "error", err)
	}

	// The schema must exist before the listener opens.
	if err := db.Init(ctx, cfg.Database.InitRetries, cfg.Database.InitDelay); err != nil {
		_ = db.Close()
		log.Fatal("database initialization failed", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", "error", err)
	}

	entryRepo := postgres.NewEntryPostgres(db)
	entrySvc := service.NewEntryService(entryRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(middleware.CORS(cfg.CORS))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		switch c.Path() {
		case "/metrics", "/health", "/healthz":
			return true
		}
		return false
	})))

	handlers.RegisterRoutes(app, db, reg, entrySvc, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "error", err)
		_ = db.Close()
		os.Exit(1)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
	if err := db.Close(); err != nil {
		log.Error("database close failed", "error", err)
	}
}

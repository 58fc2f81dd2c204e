// Package main provides the course reminder server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/teheiw192/course-reminder-go/internal/buildinfo"
	"github.com/teheiw192/course-reminder-go/internal/config"
	"github.com/teheiw192/course-reminder-go/internal/ingest"
	"github.com/teheiw192/course-reminder-go/internal/logger"
	"github.com/teheiw192/course-reminder-go/internal/metrics"
	"github.com/teheiw192/course-reminder-go/internal/normalize"
	"github.com/teheiw192/course-reminder-go/internal/notifier"
	"github.com/teheiw192/course-reminder-go/internal/reminder"
	"github.com/teheiw192/course-reminder-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).Info("Starting course reminder server")

	// Initialize Sentry (optional)
	sentryEnabled := cfg.SentryDSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     cfg.SentryDSN,
			Release: buildinfo.Version,
		}); err != nil {
			log.WithError(err).Warn("Failed to initialize Sentry, continuing without it")
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Build the period table; an invalid table is fatal before the loop starts
	table, err := cfg.Table()
	if err != nil {
		log.WithError(err).Fatal("Invalid time-slot table")
	}

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create Telegram notifier
	tg, err := notifier.NewTelegram(cfg.TelegramToken, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram notifier")
	}
	log.Info("Telegram notifier created")

	// Create normalizer and reminder scheduler
	normalizer := normalize.New(table, cfg.DefaultWeekStart, cfg.DefaultWeekEnd)
	scheduler := reminder.New(db, tg, log, reminder.Options{
		SemesterStart: cfg.SemesterStart,
		Interval:      cfg.TickInterval,
		Metrics:       m,
	})

	// Create API handler
	apiHandler := ingest.NewHandler(db, normalizer, tg, log, ingest.Options{
		DefaultSettings: cfg.DefaultSettings(),
		SemesterStart:   cfg.SemesterStart,
		Metrics:         m,
	})

	// Setup gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	setupRoutes(router, apiHandler, db, registry, cfg)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors.Default().Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Run the server, the reminder loop and the metrics updater until a
	// shutdown signal arrives or one of them fails
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	g.Go(func() error {
		updateStoreMetrics(gctx, db, m, log)
		return nil
	})

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// Package main provides the course reminder server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teheiw192/course-reminder-go/internal/buildinfo"
	"github.com/teheiw192/course-reminder-go/internal/config"
	"github.com/teheiw192/course-reminder-go/internal/ingest"
	"github.com/teheiw192/course-reminder-go/internal/storage"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, apiHandler *ingest.Handler, db *storage.DB, registry *prometheus.Registry, cfg *config.Config) {
	// Root endpoint - service identity
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "course-reminder",
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		count, _ := db.CountSchedules(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"database":  "connected",
			"schedules": count,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Schedule API
	apiHandler.Register(router.Group("/api/v1"))

	// Prometheus metrics endpoint, behind Basic Auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

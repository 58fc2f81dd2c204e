// Package main provides the course reminder server entry point.
package main

import (
	"context"
	"time"

	"github.com/teheiw192/course-reminder-go/internal/logger"
	"github.com/teheiw192/course-reminder-go/internal/metrics"
	"github.com/teheiw192/course-reminder-go/internal/storage"
)

// metricsUpdateInterval controls how often the stored-schedule gauge is
// refreshed.
const metricsUpdateInterval = 5 * time.Minute

// updateStoreMetrics periodically updates the stored-schedule gauge metric
func updateStoreMetrics(ctx context.Context, db *storage.DB, m *metrics.Metrics, log *logger.Logger) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	// Run initial update immediately
	performStoreMetricsUpdate(ctx, db, m, log)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performStoreMetricsUpdate(ctx, db, m, log)
		}
	}
}

// performStoreMetricsUpdate refreshes store gauges once
func performStoreMetricsUpdate(ctx context.Context, db *storage.DB, m *metrics.Metrics, log *logger.Logger) {
	count, err := db.CountSchedules(ctx)
	if err != nil {
		log.WithError(err).Debug("Failed to count schedules for metrics")
		return
	}
	m.SetScheduleCount(count)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Normalization metrics
	FragmentsTotal           *prometheus.CounterVec
	NormalizeDurationSeconds prometheus.Histogram

	// Reminder scheduler metrics
	TickDurationSeconds prometheus.Histogram
	RemindersSentTotal  *prometheus.CounterVec
	NotifyFailuresTotal prometheus.Counter
	TickUsersSkipped    prometheus.Counter

	// Store metrics
	SchedulesGauge prometheus.Gauge

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		FragmentsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kcb_fragments_total",
				Help: "Total number of processed schedule fragments by source and status",
			},
			[]string{"source", "status"}, // status: parsed, skipped
		),

		NormalizeDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kcb_normalize_duration_seconds",
				Help:    "Schedule normalization duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),

		TickDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kcb_reminder_tick_duration_seconds",
				Help:    "Reminder scheduler tick duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),

		RemindersSentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kcb_reminders_sent_total",
				Help: "Total number of reminders sent by kind and status",
			},
			[]string{"kind", "status"}, // kind: course, digest; status: success, error
		),

		NotifyFailuresTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "kcb_notify_failures_total",
				Help: "Total number of notification delivery failures",
			},
		),

		TickUsersSkipped: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "kcb_tick_users_skipped_total",
				Help: "Total number of users skipped during a tick due to store errors",
			},
		),

		SchedulesGauge: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "kcb_schedules_stored",
				Help: "Number of user schedules currently stored",
			},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kcb_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"},
		),
	}

	return m
}

// RecordFragment records a processed fragment with its outcome
func (m *Metrics) RecordFragment(source, status string) {
	m.FragmentsTotal.WithLabelValues(source, status).Inc()
}

// RecordNormalize records a normalization pass duration
func (m *Metrics) RecordNormalize(duration float64) {
	m.NormalizeDurationSeconds.Observe(duration)
}

// RecordTick records a scheduler tick duration
func (m *Metrics) RecordTick(duration float64) {
	m.TickDurationSeconds.Observe(duration)
}

// RecordReminder records a sent (or failed) reminder
func (m *Metrics) RecordReminder(kind, status string) {
	m.RemindersSentTotal.WithLabelValues(kind, status).Inc()
	if status == "error" {
		m.NotifyFailuresTotal.Inc()
	}
}

// RecordSkippedUser records a user skipped during a tick
func (m *Metrics) RecordSkippedUser() {
	m.TickUsersSkipped.Inc()
}

// SetScheduleCount updates the stored-schedule gauge
func (m *Metrics) SetScheduleCount(count int) {
	m.SchedulesGauge.Set(float64(count))
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}

// Package ingest exposes the HTTP surface for submitting raw schedule text
// and reading back the canonical schedule. Decoding documents and images to
// text happens upstream; this layer receives text fragments only.
package ingest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teheiw192/course-reminder-go/internal/academic"
	domerrors "github.com/teheiw192/course-reminder-go/internal/errors"
	"github.com/teheiw192/course-reminder-go/internal/logger"
	"github.com/teheiw192/course-reminder-go/internal/metrics"
	"github.com/teheiw192/course-reminder-go/internal/normalize"
	"github.com/teheiw192/course-reminder-go/internal/reminder"
	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/storage"
)

// Handler serves the schedule API.
type Handler struct {
	store         storage.ScheduleRepository
	normalizer    *normalize.Normalizer
	notifier      reminder.Notifier
	defaults      schedule.ReminderSettings
	semesterStart time.Time
	log           *logger.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

// Options configures a Handler.
type Options struct {
	DefaultSettings schedule.ReminderSettings
	SemesterStart   time.Time
	Metrics         *metrics.Metrics // optional
	Now             func() time.Time // clock override for tests
}

// NewHandler creates the API handler.
func NewHandler(store storage.ScheduleRepository, normalizer *normalize.Normalizer, notifier reminder.Notifier, log *logger.Logger, opts Options) *Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		store:         store,
		normalizer:    normalizer,
		notifier:      notifier,
		defaults:      opts.DefaultSettings,
		semesterStart: opts.SemesterStart,
		log:           log.WithModule("ingest"),
		metrics:       opts.Metrics,
		now:           now,
	}
}

// Register mounts all schedule routes under the given router group.
func (h *Handler) Register(r gin.IRouter) {
	users := r.Group("/users/:id")
	users.POST("/schedule", h.IngestSchedule)
	users.GET("/schedule", h.GetSchedule)
	users.GET("/schedule/today", h.GetToday)
	users.DELETE("/schedule", h.DeleteSchedule)
	users.PUT("/settings", h.UpdateSettings)
	users.POST("/test-reminder", h.TestReminder)
}

type ingestRequest struct {
	Source    normalize.SourceKind `json:"source"`
	Text      string               `json:"text"`
	Fragments []normalize.Fragment `json:"fragments"`
}

var validSources = map[normalize.SourceKind]bool{
	normalize.SourceDocument:    true,
	normalize.SourceSpreadsheet: true,
	normalize.SourceImage:       true,
	normalize.SourcePlainText:   true,
}

// IngestSchedule parses submitted fragments and replaces the user's whole
// schedule with the result. Settings from an existing schedule survive the
// replacement; the occurrence list is always re-derived from scratch.
func (h *Handler) IngestSchedule(c *gin.Context) {
	userID := c.Param("id")

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.clientError(c, "ingest", "invalid request body: "+err.Error())
		return
	}

	fragments := req.Fragments
	if req.Text != "" {
		source := req.Source
		if source == "" {
			source = normalize.SourcePlainText
		}
		fragments = append(fragments, normalize.Fragment{Source: source, Text: req.Text})
	}
	if len(fragments) == 0 {
		h.clientError(c, "ingest", "no fragments supplied")
		return
	}
	for _, f := range fragments {
		if !validSources[f.Source] {
			h.clientError(c, "ingest", "unknown source kind: "+string(f.Source))
			return
		}
	}

	start := time.Now()
	occurrences, warnings := h.normalizer.Normalize(fragments)
	if h.metrics != nil {
		h.metrics.RecordNormalize(time.Since(start).Seconds())
		for _, f := range fragments {
			status := "parsed"
			if len(occurrences) == 0 {
				status = "skipped"
			}
			h.metrics.RecordFragment(string(f.Source), status)
		}
	}

	if len(occurrences) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "no courses could be recognized",
			"warnings": warnings,
		})
		return
	}

	settings := h.defaults
	if existing, err := h.store.GetUserSchedule(c.Request.Context(), userID); err != nil {
		h.serverError(c, "ingest", err)
		return
	} else if existing != nil {
		settings = existing.Settings
	}

	sched := &schedule.UserSchedule{Occurrences: occurrences, Settings: settings}
	if err := h.store.SaveUserSchedule(c.Request.Context(), userID, sched); err != nil {
		h.serverError(c, "ingest", err)
		return
	}

	h.log.WithField("user_id", userID).
		WithField("occurrences", len(occurrences)).
		WithField("warnings", len(warnings)).
		Info("Schedule replaced")

	c.JSON(http.StatusOK, gin.H{
		"occurrences": occurrences,
		"warnings":    warnings,
		"settings":    settings,
	})
}

// GetSchedule returns the stored schedule grouped by weekday.
func (h *Handler) GetSchedule(c *gin.Context) {
	sched, ok := h.loadSchedule(c)
	if !ok {
		return
	}

	byDay := make(map[string][]schedule.CourseOccurrence)
	for _, occ := range sched.Occurrences {
		byDay[occ.Weekday.String()] = append(byDay[occ.Weekday.String()], occ)
	}

	c.JSON(http.StatusOK, gin.H{
		"occurrences": sched.Occurrences,
		"by_day":      byDay,
		"settings":    sched.Settings,
		"updated_at":  sched.UpdatedAt,
	})
}

// GetToday returns the occurrences due today: weekday match plus academic
// week in range.
func (h *Handler) GetToday(c *gin.Context) {
	sched, ok := h.loadSchedule(c)
	if !ok {
		return
	}

	now := h.now()
	week := academic.CurrentWeek(h.semesterStart, now)
	due := reminder.DueOn(sched.Occurrences, schedule.WeekdayOf(now), week)

	c.JSON(http.StatusOK, gin.H{
		"date":    now.Format("2006-01-02"),
		"weekday": schedule.WeekdayOf(now).String(),
		"week":    week,
		"courses": due,
	})
}

// DeleteSchedule removes the user's schedule entirely.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.store.DeleteUserSchedule(c.Request.Context(), c.Param("id")); err != nil {
		h.serverError(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSettings replaces the user's reminder settings, leaving the
// occurrence list untouched.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var settings schedule.ReminderSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		h.clientError(c, "settings", "invalid request body: "+err.Error())
		return
	}
	if err := settings.Validate(); err != nil {
		h.clientError(c, "settings", err.Error())
		return
	}

	sched, ok := h.loadSchedule(c)
	if !ok {
		return
	}
	sched.Settings = settings

	if err := h.store.SaveUserSchedule(c.Request.Context(), c.Param("id"), sched); err != nil {
		h.serverError(c, "settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// TestReminder sends the user's earliest stored occurrence through the real
// notifier so they can verify delivery end to end.
func (h *Handler) TestReminder(c *gin.Context) {
	sched, ok := h.loadSchedule(c)
	if !ok {
		return
	}
	if len(sched.Occurrences) == 0 {
		h.clientError(c, "test_reminder", "schedule has no courses")
		return
	}

	occ := sched.Occurrences[0]
	if err := h.notifier.Send(c.Request.Context(), c.Param("id"), reminder.FormatReminder(occ)); err != nil {
		h.log.WithError(err).WithField("user_id", c.Param("id")).Warn("Test reminder delivery failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": domerrors.GetUserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"delivered": true, "course": occ.CourseName})
}

// loadSchedule fetches the user's schedule and handles the absent and error
// responses. The boolean is false when a response has already been written.
func (h *Handler) loadSchedule(c *gin.Context) (*schedule.UserSchedule, bool) {
	sched, err := h.store.GetUserSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serverError(c, "load", err)
		return nil, false
	}
	if sched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule stored for this user"})
		return nil, false
	}
	return sched, true
}

func (h *Handler) clientError(c *gin.Context, operation, message string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError("bad_request", operation)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (h *Handler) serverError(c *gin.Context, operation string, err error) {
	h.log.WithError(err).WithField("operation", operation).Error("Request failed")
	if h.metrics != nil {
		h.metrics.RecordHTTPError("internal", operation)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// Package reminder drives the background loop that decides, once per tick,
// which course should trigger a notification for which user right now.
//
// One shared loop serves all users; state is partitioned by user identifier
// so no cross-user locking is needed. Firing uses a half-open window
// [start-lead, start) plus a per-(user, occurrence, date) marker, which
// guarantees at-most-once delivery per occurrence per calendar day no matter
// how ticks drift or skip.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/teheiw192/course-reminder-go/internal/academic"
	"github.com/teheiw192/course-reminder-go/internal/logger"
	"github.com/teheiw192/course-reminder-go/internal/metrics"
	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 60 * time.Second

// Markers older than two days can never match a lookup again (keys are
// date-scoped), so the cache expires them instead of the tick loop.
const (
	markerTTL   = 48 * time.Hour
	markerSweep = time.Hour
)

// Notifier delivers a rendered message to a user. Delivery is fire-and-forget:
// the scheduler never retries and records the fired marker either way.
type Notifier interface {
	Send(ctx context.Context, userID, message string) error
}

// Store is the read side of the schedule store the scheduler iterates on
// each tick.
type Store interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	GetUserSchedule(ctx context.Context, userID string) (*schedule.UserSchedule, error)
}

// Options configures a Scheduler.
type Options struct {
	SemesterStart time.Time
	Interval      time.Duration    // tick interval, DefaultInterval when zero
	Metrics       *metrics.Metrics // optional
	Now           func() time.Time // clock override for tests
}

// Scheduler is the shared reminder loop.
type Scheduler struct {
	store         Store
	notifier      Notifier
	log           *logger.Logger
	semesterStart time.Time
	interval      time.Duration
	markers       *gocache.Cache
	metrics       *metrics.Metrics
	now           func() time.Time
}

// New creates a scheduler. It does not start ticking until Run is called.
func New(store Store, notifier Notifier, log *logger.Logger, opts Options) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		store:         store,
		notifier:      notifier,
		log:           log.WithModule("reminder"),
		semesterStart: opts.SemesterStart,
		interval:      interval,
		markers:       gocache.New(markerTTL, markerSweep),
		metrics:       opts.Metrics,
		now:           now,
	}
}

// Run drives the tick loop until the context is cancelled. Fired markers
// live only in memory: after a restart the loop rebuilds them empty, at the
// cost of at most one duplicate reminder across the restart boundary.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.WithField("interval", s.interval.String()).Info("Reminder scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reminder scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick evaluates every stored user once. A user whose schedule cannot be
// loaded is skipped for this tick; the tick itself never aborts.
func (s *Scheduler) tick(ctx context.Context) {
	start := time.Now()

	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list users, skipping tick")
		return
	}

	now := s.now()
	for _, userID := range userIDs {
		sched, err := s.store.GetUserSchedule(ctx, userID)
		if err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("Failed to load schedule, skipping user")
			if s.metrics != nil {
				s.metrics.RecordSkippedUser()
			}
			continue
		}
		if sched == nil {
			continue
		}
		s.evaluateUser(ctx, now, userID, sched)
	}

	if s.metrics != nil {
		s.metrics.RecordTick(time.Since(start).Seconds())
	}
}

// evaluateUser runs the course-reminder window check and the daily digest
// check for one user at one instant.
func (s *Scheduler) evaluateUser(ctx context.Context, now time.Time, userID string, sched *schedule.UserSchedule) {
	if sched.Settings.Enabled {
		s.checkCourseReminders(ctx, now, userID, sched)
	}
	if sched.Settings.DailyDigestEnabled {
		s.checkDailyDigest(ctx, now, userID, sched)
	}
}

func (s *Scheduler) checkCourseReminders(ctx context.Context, now time.Time, userID string, sched *schedule.UserSchedule) {
	today := now.Format("2006-01-02")
	nowClock := schedule.FromTime(now)
	lead := schedule.ClockTime(sched.Settings.LeadMinutes)

	for _, occ := range DueOn(sched.Occurrences, schedule.WeekdayOf(now), academic.CurrentWeek(s.semesterStart, now)) {
		fireAt := occ.Time.Start - lead
		if fireAt < 0 {
			fireAt = 0
		}
		if nowClock < fireAt || nowClock >= occ.Time.Start {
			continue
		}

		key := markerKey(userID, occ.Key(), today)
		if _, fired := s.markers.Get(key); fired {
			continue
		}

		err := s.notifier.Send(ctx, userID, FormatReminder(occ))
		if err != nil {
			s.log.WithError(err).
				WithField("user_id", userID).
				WithField("course", occ.CourseName).
				Error("Failed to deliver reminder")
		}
		// Record the marker even on delivery failure: at-most-once, not
		// at-least-once, so a flaky channel cannot cause duplicate storms.
		s.markers.Set(key, struct{}{}, markerTTL)
		s.recordReminder("course", err)
	}
}

// checkDailyDigest compares the clock against the configured digest time
// using point equality at minute granularity. The digest is a once-daily
// best-effort notice, not a safety-critical reminder, so the window
// machinery is deliberately not applied here; the per-day marker only stops
// a second send within the matching minute.
func (s *Scheduler) checkDailyDigest(ctx context.Context, now time.Time, userID string, sched *schedule.UserSchedule) {
	if schedule.FromTime(now) != sched.Settings.DailyDigestTime {
		return
	}

	key := markerKey(userID, "digest", now.Format("2006-01-02"))
	if _, sent := s.markers.Get(key); sent {
		return
	}
	s.markers.Set(key, struct{}{}, markerTTL)

	tomorrow := now.AddDate(0, 0, 1)
	due := DueOn(sched.Occurrences, schedule.WeekdayOf(tomorrow), academic.CurrentWeek(s.semesterStart, tomorrow))
	if len(due) == 0 {
		return
	}

	err := s.notifier.Send(ctx, userID, FormatDigest(schedule.WeekdayOf(tomorrow), due))
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to deliver daily digest")
	}
	s.recordReminder("digest", err)
}

func (s *Scheduler) recordReminder(kind string, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordReminder(kind, status)
}

// DueOn selects the occurrences scheduled for the given weekday and active
// in the given academic week, ordered by start time.
func DueOn(occurrences []schedule.CourseOccurrence, day schedule.Weekday, week int) []schedule.CourseOccurrence {
	var due []schedule.CourseOccurrence
	for _, occ := range occurrences {
		if occ.Weekday == day && occ.ActiveInWeek(week) {
			due = append(due, occ)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Time.Start < due[j].Time.Start })
	return due
}

func markerKey(userID, occKey, date string) string {
	return fmt.Sprintf("%s|%s|%s", userID, occKey, date)
}

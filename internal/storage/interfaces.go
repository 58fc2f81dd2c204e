// Package storage provides repository interfaces for data access abstraction.
// These interfaces enable dependency inversion and facilitate testing by
// decoupling handlers and the scheduler from the concrete SQLite store.
package storage

import (
	"context"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

// ScheduleRepository defines the interface for schedule persistence.
type ScheduleRepository interface {
	GetUserSchedule(ctx context.Context, userID string) (*schedule.UserSchedule, error)
	SaveUserSchedule(ctx context.Context, userID string, sched *schedule.UserSchedule) error
	ListUserIDs(ctx context.Context) ([]string, error)
	DeleteUserSchedule(ctx context.Context, userID string) error
	CountSchedules(ctx context.Context) (int, error)
}

package schedule

import (
	"context"

	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Schedule interface {
	ScheduleForDay(ctx context.Context, dayOfWeek string) ([]service.ScheduleEntry, error)
	UserSchedule(ctx context.Context, userID string) ([]entity.Schedule, error)
	CreateSchedule(ctx context.Context, request service.CreateScheduleRequest) (entity.Schedule, error)
}

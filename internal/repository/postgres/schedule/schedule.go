package schedule

import (
	"context"

	"university-backend/internal/entity"
	"university-backend/internal/pkg/repository/postgresql"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Create(ctx context.Context, schedule entity.Schedule) (entity.Schedule, error) {
	schedule.ID = 0

	if _, err := r.NewInsert().Model(&schedule).Returning("id").Exec(ctx); err != nil {
		return entity.Schedule{}, postgresql.Translate(err, "creating schedule")
	}

	return schedule, nil
}

func (r Repository) ListByDay(ctx context.Context, dayOfWeek string) ([]entity.Schedule, error) {
	var list []entity.Schedule

	err := r.NewSelect().Model(&list).Where("day_of_week = ?", dayOfWeek).Order("id ASC").Scan(ctx)

	return list, postgresql.Translate(err, "selecting schedules by day")
}

func (r Repository) ListByUser(ctx context.Context, userID string) ([]entity.Schedule, error) {
	var list []entity.Schedule

	err := r.NewSelect().Model(&list).Where("user_id = ?", userID).Order("id ASC").Scan(ctx)

	return list, postgresql.Translate(err, "selecting user schedules")
}

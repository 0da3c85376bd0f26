package attendance

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

func (r Repository) Get(ctx context.Context, userID, date string) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Scan(ctx)

	return detail, postgresql.Translate(err, "selecting attendance")
}

func (r Repository) History(ctx context.Context, userID string, limit int) ([]entity.Attendance, error) {
	var list []entity.Attendance

	q := r.NewSelect().Model(&list).
		Where("user_id = ?", userID).
		OrderExpr("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	return list, postgresql.Translate(q.Scan(ctx), "selecting attendance history")
}

func (r Repository) ListByDate(ctx context.Context, date string) ([]entity.Attendance, error) {
	var list []entity.Attendance

	err := r.NewSelect().Model(&list).Where("date = ?", date).Order("id ASC").Scan(ctx)

	return list, postgresql.Translate(err, "selecting attendance by date")
}

// Upsert relies on the (user_id, date) unique index so concurrent marks for
// the same day collapse into one row.
func (r Repository) Upsert(ctx context.Context, a entity.Attendance) (entity.Attendance, error) {
	a.ID = 0

	_, err := r.NewInsert().Model(&a).
		On("CONFLICT (user_id, date) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("time_in = EXCLUDED.time_in").
		Set("time_out = EXCLUDED.time_out").
		Set("marked_by = EXCLUDED.marked_by").
		Set("marked_at = EXCLUDED.marked_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return entity.Attendance{}, postgresql.Translate(err, "upserting attendance")
	}

	return a, nil
}

package leave

import (
	"context"
	"time"

	"university-backend/internal/entity"
	"university-backend/internal/pkg/repository/postgresql"
	"university-backend/internal/repository"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Create(ctx context.Context, request entity.LeaveRequest) (entity.LeaveRequest, error) {
	request.ID = 0

	if _, err := r.NewInsert().Model(&request).Returning("id").Exec(ctx); err != nil {
		return entity.LeaveRequest{}, postgresql.Translate(err, "creating leave request")
	}

	return request, nil
}

func (r Repository) GetByID(ctx context.Context, id int) (entity.LeaveRequest, error) {
	var detail entity.LeaveRequest

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)

	return detail, postgresql.Translate(err, "selecting leave request")
}

func (r Repository) ListByUser(ctx context.Context, userID string) ([]entity.LeaveRequest, error) {
	var list []entity.LeaveRequest

	err := r.NewSelect().Model(&list).
		Where("user_id = ?", userID).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)

	return list, postgresql.Translate(err, "selecting leave requests")
}

func (r Repository) ListPending(ctx context.Context) ([]entity.LeaveRequest, error) {
	var list []entity.LeaveRequest

	err := r.NewSelect().Model(&list).
		Where("status = ?", entity.LeavePending).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)

	return list, postgresql.Translate(err, "selecting pending leave requests")
}

// Respond updates only while the row is still pending, so of two racing
// decisions exactly one affects a row.
func (r Repository) Respond(ctx context.Context, id int, status entity.LeaveStatus, responderID string, at time.Time) (entity.LeaveRequest, error) {
	res, err := r.NewUpdate().Model((*entity.LeaveRequest)(nil)).
		Set("status = ?", status).
		Set("approved_by = ?", responderID).
		Set("responded_at = ?", at).
		Where("id = ?", id).
		Where("status = ?", entity.LeavePending).
		Exec(ctx)
	if err != nil {
		return entity.LeaveRequest{}, postgresql.Translate(err, "responding to leave request")
	}

	detail, err := r.GetByID(ctx, id)
	if err != nil {
		return entity.LeaveRequest{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return detail, repository.ErrInvalidTransition
	}

	return detail, nil
}

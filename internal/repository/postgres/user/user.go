package user

import (
	"context"

	"github.com/uptrace/bun"

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

func (r Repository) GetByID(ctx context.Context, id string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)

	return detail, postgresql.Translate(err, "selecting user")
}

func (r Repository) List(ctx context.Context) ([]entity.User, error) {
	var list []entity.User

	err := r.NewSelect().Model(&list).Order("id ASC").Scan(ctx)

	return list, postgresql.Translate(err, "selecting users")
}

func (r Repository) Create(ctx context.Context, user entity.User) (entity.User, error) {
	if _, err := r.NewInsert().Model(&user).Exec(ctx); err != nil {
		return entity.User{}, postgresql.Translate(err, "creating user")
	}

	return user, nil
}

func (r Repository) Patch(ctx context.Context, id string, patch entity.UserPatch) (entity.User, error) {
	var user entity.User

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&user).Where("id = ?", id).For("UPDATE").Scan(ctx)
		if err != nil {
			return postgresql.Translate(err, "locking user")
		}

		user = patch.Apply(user)
		if _, err = tx.NewUpdate().Model(&user).WherePK().Exec(ctx); err != nil {
			return postgresql.Translate(err, "updating user")
		}
		return nil
	})
	if err != nil {
		return entity.User{}, err
	}

	return user, nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	found, err := r.DeleteRow(ctx, "users", id)
	if err != nil {
		return err
	}
	if !found {
		return repository.ErrNotFound
	}

	return nil
}

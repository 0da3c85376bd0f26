package auth

import (
	"context"

	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Session interface {
	Login(ctx context.Context, id, password string) (service.LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (entity.User, error)
}

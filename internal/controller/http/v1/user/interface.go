package user

import (
	"context"
	"io"

	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type User interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, request service.CreateUserRequest) (entity.User, error)
	UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (entity.User, error)
	DeleteUser(ctx context.Context, id string) error
	ImportUsers(ctx context.Context, r io.Reader) (service.ImportResult, error)
	UserQRCode(ctx context.Context, id string) ([]byte, error)
	BadgeSheet(ctx context.Context) ([]byte, error)
}

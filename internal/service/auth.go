package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/repository"
)

type LoginResult struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Role       entity.Role `json:"role"`
	Department *string     `json:"department"`
	Token      string      `json:"token"`
}

// dummyHash keeps the unknown id path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unused-password"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(b), nil
}

// Login checks id and password and opens a session. Unknown ids and wrong
// passwords fail with the same message.
func (s *Service) Login(ctx context.Context, id, password string) (LoginResult, error) {
	if strings.TrimSpace(id) == "" || password == "" {
		return LoginResult{}, invalidf("ID and password are required")
	}

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return LoginResult{}, errors.Wrap(err, "login")
	}

	hash := dummyHash
	if err == nil {
		hash = []byte(user.Password)
	}
	if cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(password)); cmpErr != nil || err != nil {
		return LoginResult{}, web.NewRequestError(ErrInvalidCredentials, http.StatusUnauthorized)
	}

	token, _, err := s.auth.Login(ctx, user.ID, user.Role)
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "login")
	}

	return LoginResult{
		ID:         user.ID,
		Name:       user.Name,
		Role:       user.Role,
		Department: user.Department,
		Token:      token,
	}, nil
}

func (s *Service) Logout(ctx context.Context) error {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return err
	}
	return s.auth.Logout(ctx, claims)
}

func (s *Service) Me(ctx context.Context) (entity.User, error) {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return entity.User{}, err
	}

	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return entity.User{}, storeErr(err, "user")
	}
	return user, nil
}

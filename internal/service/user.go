package service

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/repository"
	"university-backend/internal/service/report"
)

type CreateUserRequest struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       entity.Role `json:"role"`
	Department *string     `json:"department"`
	IsActive   *bool       `json:"isActive"`
}

type ImportResult struct {
	Created    int   `json:"created"`
	FailedRows []int `json:"failedRows"`
}

func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	return list, nil
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (entity.User, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return entity.User{}, err
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = norm.NFC.String(strings.TrimSpace(req.Name))
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.ID == "", req.Name == "", req.Email == "", req.Password == "":
		return entity.User{}, invalidf("id, name, email and password are required")
	case !req.Role.Valid():
		return entity.User{}, invalidf("invalid role %q", req.Role)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return entity.User{}, err
	}

	user := entity.User{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Role:       req.Role,
		Department: req.Department,
		IsActive:   true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	created, err := s.store.Users().Create(ctx, user)
	if err != nil {
		return entity.User{}, storeErr(err, "user "+req.ID)
	}
	return created, nil
}

// UpdateUser applies a partial update. The id never changes and a new
// password is stored hashed.
func (s *Service) UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (entity.User, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return entity.User{}, err
	}

	if patch.Role != nil && !patch.Role.Valid() {
		return entity.User{}, invalidf("invalid role %q", *patch.Role)
	}
	if patch.Name != nil {
		name := norm.NFC.String(strings.TrimSpace(*patch.Name))
		if name == "" {
			return entity.User{}, invalidf("name must not be blank")
		}
		patch.Name = &name
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return entity.User{}, invalidf("email must not be blank")
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return entity.User{}, invalidf("password must not be blank")
		}
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return entity.User{}, err
		}
		patch.Password = &hash
	}

	updated, err := s.store.Users().Patch(ctx, id, patch)
	if err != nil {
		return entity.User{}, storeErr(err, "user")
	}
	return updated, nil
}

// DeleteUser removes the account only. Attendance, leave and schedule rows
// that reference it stay in place.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}

	if err := s.store.Users().Delete(ctx, id); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

// ImportUsers creates every valid row of an .xlsx upload and reports the
// sheet rows that were skipped.
func (s *Service) ImportUsers(ctx context.Context, r io.Reader) (ImportResult, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return ImportResult{}, err
	}

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return ImportResult{}, errors.Wrap(err, "listing users")
	}
	existing := make(map[string]struct{}, len(users))
	for _, u := range users {
		existing[u.ID] = struct{}{}
	}

	rows, failed, err := report.ReadUsers(r, existing)
	if err != nil {
		return ImportResult{}, invalidf("unreadable workbook")
	}

	result := ImportResult{FailedRows: failed}
	for _, row := range rows {
		hash, err := HashPassword(row.Password)
		if err != nil {
			return result, err
		}

		user := entity.User{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			Password: hash,
			Role:     row.Role,
			IsActive: true,
		}
		if row.Department != "" {
			dep := row.Department
			user.Department = &dep
		}

		if _, err = s.store.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				result.FailedRows = append(result.FailedRows, row.Line)
				continue
			}
			return result, errors.Wrap(err, "importing users")
		}
		result.Created++
	}

	if result.FailedRows == nil {
		result.FailedRows = []int{}
	}
	return result, nil
}

func (s *Service) UserQRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return report.QRCode(user.ID, 256)
}

// BadgeSheet renders a PDF badge for every active user.
func (s *Service) BadgeSheet(ctx context.Context) ([]byte, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing users")
	}

	var badges []report.Badge
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		b := report.Badge{ID: u.ID, Name: u.Name, Role: string(u.Role)}
		if u.Department != nil {
			b.Department = *u.Department
		}
		badges = append(badges, b)
	}
	return report.BadgeSheet(badges)
}

// Package service holds the domain rules: who may mark, read and decide what.
// The caller is always taken from the claims the auth middleware put in ctx.
package service

import (
	"time"

	"university-backend/internal/auth"
	"university-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type Service struct {
	store repository.Store
	auth  *auth.Auth
	now   func() time.Time
}

func New(store repository.Store, a *auth.Auth) *Service {
	return &Service{
		store: store,
		auth:  a,
		now:   time.Now,
	}
}

// today is the current UTC date. Stored dates carry no zone.
func (s *Service) today() string {
	return s.now().UTC().Format(dateLayout)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/repository"
)

// SessionCookie names the cookie login sets alongside the returned token.
const SessionCookie = "session"

// Authenticate resolves the caller from a Bearer token or the session cookie
// and, when roles are given, admits only those roles. The role is read from
// users on every request; a deleted account is unauthenticated.
func Authenticate(a *auth.Auth, users repository.Users, roles ...entity.Role) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			token := bearer(c.Request.Header.Get("Authorization"))
			if token == "" {
				token, _ = c.Cookie(SessionCookie)
			}
			if token == "" {
				return c.RespondError(web.NewRequestError(auth.ErrUnauthenticated, http.StatusUnauthorized))
			}

			claims, err := a.Authenticate(c.Ctx, token)
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}
			if err != nil {
				return c.RespondError(err)
			}

			user, err := users.GetByID(c.Ctx, claims.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.RespondError(web.NewRequestError(auth.ErrUnauthenticated, http.StatusUnauthorized))
			}
			if err != nil {
				return c.RespondError(errors.Wrap(err, "loading caller"))
			}
			claims.Role = user.Role

			ctx := auth.WithClaims(c.Ctx, claims)
			if _, err = auth.RequireRole(ctx, roles...); err != nil {
				return c.RespondError(err)
			}

			c.WithContext(ctx)
			return handler(c)
		}

		return h
	}

	return m
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

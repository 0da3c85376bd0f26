// Package auth issues and verifies session tokens. A token is an HS256 JWT
// naming a server side session; the token is only accepted while that
// session still exists, so logout revokes it.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/entity"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// ctxKey is unexported so only this package can place claims in a context.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserID    string      `json:"uid"`
	Role      entity.Role `json:"role"`
	SessionID string      `json:"sid"`
}

// Authorized returns true if the claims has at least one of the provided roles.
func (c Claims) Authorized(roles ...entity.Role) bool {
	for _, has := range roles {
		if c.Role == has {
			return true
		}
	}
	return false
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, Key, claims)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}

// RequireRole fails with 401 when ctx carries no claims and with 403 when the
// caller's role is outside roles. An empty roles list admits any caller.
func RequireRole(ctx context.Context, roles ...entity.Role) (Claims, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return Claims{}, web.NewRequestError(ErrUnauthenticated, http.StatusUnauthorized)
	}
	if len(roles) > 0 && !claims.Authorized(roles...) {
		return Claims{}, web.NewRequestError(ErrForbidden, http.StatusForbidden)
	}
	return claims, nil
}

// Auth is used to authenticate clients.
type Auth struct {
	key      []byte
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func New(key string, sessions SessionStore, ttl time.Duration) (*Auth, error) {
	if key == "" {
		return nil, errors.New("jwt key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &Auth{
		key:      []byte(key),
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// Login opens a session bound to (userID, role) and returns the signed token.
func (a *Auth) Login(ctx context.Context, userID string, role entity.Role) (string, Claims, error) {
	now := a.now()
	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
	}
	if err := a.sessions.Save(ctx, session, a.ttl); err != nil {
		return "", Claims{}, errors.Wrap(err, "saving session")
	}

	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.ttl).Unix(),
		},
		UserID:    userID,
		Role:      role,
		SessionID: session.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", Claims{}, errors.Wrap(err, "signing token")
	}

	return token, claims, nil
}

// Authenticate verifies the token signature and expiry and that its session
// is still open.
func (a *Auth) Authenticate(ctx context.Context, tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrUnauthenticated
	}

	session, err := a.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return Claims{}, ErrUnauthenticated
	}
	if err != nil {
		return Claims{}, errors.Wrap(err, "loading session")
	}
	if session.UserID != claims.UserID {
		return Claims{}, ErrUnauthenticated
	}

	return claims, nil
}

// Logout closes the session behind claims.
func (a *Auth) Logout(ctx context.Context, claims Claims) error {
	return errors.Wrap(a.sessions.Delete(ctx, claims.SessionID), "deleting session")
}

package auth

import (
	"net/http"
	"time"

	"university-backend/foundation/web"
	"university-backend/internal/middleware"
)

type Controller struct {
	session      Session
	ttl          time.Duration
	cookieSecure bool
}

func NewController(session Session, ttl time.Duration, cookieSecure bool) *Controller {
	return &Controller{session: session, ttl: ttl, cookieSecure: cookieSecure}
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (ac Controller) Login(c *web.Context) error {
	var data loginRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	result, err := ac.session.Login(c.Ctx, data.ID, data.Password)
	if err != nil {
		return c.RespondError(err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, result.Token, int(ac.ttl.Seconds()), "/", "", ac.cookieSecure, true)

	return c.Respond(result, http.StatusOK)
}

func (ac Controller) Logout(c *web.Context) error {
	if err := ac.session.Logout(c.Ctx); err != nil {
		return c.RespondError(err)
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.cookieSecure, true)

	return c.Respond(map[string]string{"message": "Logged out successfully"}, http.StatusOK)
}

func (ac Controller) Me(c *web.Context) error {
	user, err := ac.session.Me(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(user, http.StatusOK)
}

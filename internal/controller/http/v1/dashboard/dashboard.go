package dashboard

import (
	"net/http"

	"university-backend/foundation/web"
)

type Controller struct {
	dashboard Dashboard
}

func NewController(dashboard Dashboard) *Controller {
	return &Controller{dashboard: dashboard}
}

func (dc Controller) GetStats(c *web.Context) error {
	stats, err := dc.dashboard.DashboardStats(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(stats, http.StatusOK)
}

package leave

import (
	"net/http"
	"reflect"

	"university-backend/foundation/web"
	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Controller struct {
	leave Leave
}

func NewController(leave Leave) *Controller {
	return &Controller{leave: leave}
}

func (lc Controller) Create(c *web.Context) error {
	var data service.CreateLeaveRequest

	if err := c.BindFunc(&data, "LeaveType", "FromDate", "ToDate", "Reason"); err != nil {
		return c.RespondError(err)
	}

	created, err := lc.leave.CreateLeaveRequest(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(created, http.StatusCreated)
}

func (lc Controller) GetList(c *web.Context) error {
	list, err := lc.leave.ListLeaveRequests(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

type respondRequest struct {
	Status entity.LeaveStatus `json:"status"`
}

func (lc Controller) Respond(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data respondRequest
	if err := c.BindFunc(&data, "Status"); err != nil {
		return c.RespondError(err)
	}

	updated, err := lc.leave.RespondToLeaveRequest(c.Ctx, id, data.Status)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(updated, http.StatusOK)
}

package schedule

import (
	"net/http"
	"reflect"

	"university-backend/foundation/web"
	"university-backend/internal/service"
)

type Controller struct {
	schedule Schedule
}

func NewController(schedule Schedule) *Controller {
	return &Controller{schedule: schedule}
}

func (sc Controller) GetByDay(c *web.Context) error {
	day := c.GetParam(reflect.String, "dayOfWeek").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := sc.schedule.ScheduleForDay(c.Ctx, day)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (sc Controller) GetByUser(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := sc.schedule.UserSchedule(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (sc Controller) Create(c *web.Context) error {
	var data service.CreateScheduleRequest

	if err := c.BindFunc(&data, "UserID", "DayOfWeek", "StartTime", "EndTime"); err != nil {
		return c.RespondError(err)
	}

	created, err := sc.schedule.CreateSchedule(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(created, http.StatusCreated)
}

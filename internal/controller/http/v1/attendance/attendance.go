package attendance

import (
	"net/http"
	"reflect"

	"university-backend/foundation/web"
	"university-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance: attendance}
}

func (ac Controller) Mark(c *web.Context) error {
	var data service.MarkAttendanceRequest

	if err := c.BindFunc(&data, "UserID", "Date", "Status"); err != nil {
		return c.RespondError(err)
	}

	record, err := ac.attendance.MarkAttendance(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(record, http.StatusCreated)
}

func (ac Controller) GetHistory(c *web.Context) error {
	userID := c.GetParam(reflect.String, "userId").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	limit, _ := c.GetQueryFunc(reflect.Int, "limit").(*int)
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := ac.attendance.AttendanceHistory(c.Ctx, userID, limit)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (ac Controller) GetList(c *web.Context) error {
	list, err := ac.attendance.AttendanceForDay(c.Ctx, c.Query("date"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (ac Controller) Export(c *web.Context) error {
	b, day, err := ac.attendance.ExportAttendanceForDay(c.Ctx, c.Query("date"))
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", "attachment; filename=attendance-"+day+".xlsx")
	c.Data(http.StatusOK, xlsxContentType, b)
	return nil
}

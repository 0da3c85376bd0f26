package user

import (
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Controller struct {
	user User
}

func NewController(user User) *Controller {
	return &Controller{user}
}

func (uc Controller) GetUserList(c *web.Context) error {
	list, err := uc.user.ListUsers(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (uc Controller) CreateUser(c *web.Context) error {
	var data service.CreateUserRequest

	if err := c.BindFunc(&data, "ID", "Name", "Email", "Password", "Role"); err != nil {
		return c.RespondError(err)
	}

	user, err := uc.user.CreateUser(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(user, http.StatusCreated)
}

func (uc Controller) UpdateUser(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data entity.UserPatch
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	user, err := uc.user.UpdateUser(c.Ctx, id, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(user, http.StatusOK)
}

func (uc Controller) DeleteUser(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.DeleteUser(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]string{"message": "User deleted successfully"}, http.StatusOK)
}

// ImportUsers takes a multipart "file" field holding an .xlsx workbook.
func (uc Controller) ImportUsers(c *web.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("file is required"), http.StatusBadRequest))
	}

	file, err := header.Open()
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "opening upload"), http.StatusBadRequest))
	}
	defer file.Close()

	result, err := uc.user.ImportUsers(c.Ctx, file)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(result, http.StatusOK)
}

func (uc Controller) GetQrCode(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	png, err := uc.user.UserQRCode(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", "inline; filename="+id+".png")
	c.Data(http.StatusOK, "image/png", png)
	return nil
}

func (uc Controller) GetBadges(c *web.Context) error {
	pdf, err := uc.user.BadgeSheet(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", "attachment; filename=badges.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
	return nil
}

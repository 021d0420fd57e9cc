// file: internals/features/centers/sdcs/controller/sdc_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/centers/sdcs/dto"
	"sdc_backend/internals/features/centers/sdcs/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type SDCController struct {
	Svc *service.Service
}

func NewSDCController(db *gorm.DB) *SDCController {
	return &SDCController{Svc: service.New(db)}
}

// POST /api/a/work-orders/:id/sdcs
func (ctl *SDCController) Provision(c *fiber.Ctx) error {
	woID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req dto.ProvisionSDCRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	sdc, err := ctl.Svc.ProvisionSDC(c.UserContext(), req.ToInput(woID))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonCreated(c, "sdc created", sdc)
}

// GET /api/u/work-orders/:id/sdcs
func (ctl *SDCController) ListByWorkOrder(c *fiber.Ctx) error {
	woID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	paging := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Svc.ListByWorkOrder(c.UserContext(), woID, paging)
	if err != nil {
		return apperr.Respond(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/u/sdcs/:id
func (ctl *SDCController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.GetSDC(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/a/sdcs/:id/progress
func (ctl *SDCController) UpdateProgress(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req dto.UpdateProgressRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	out, err := ctl.Svc.UpdateProgress(c.UserContext(), id, req.ToInput())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "progress updated", out)
}

package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/catalog/job_roles/dto"
	"sdc_backend/internals/features/catalog/job_roles/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type JobRoleController struct {
	Svc *service.Service
}

func NewJobRoleController(db *gorm.DB) *JobRoleController {
	return &JobRoleController{Svc: service.New(db)}
}

func (ctl *JobRoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRoleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()
	m := req.ToModel()
	if err := ctl.Svc.Create(c.UserContext(), m); err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonCreated(c, "job role created", m)
}

func (ctl *JobRoleController) List(c *fiber.Ctx) error {
	var q dto.ListJobRoleQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	paging := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Svc.List(c.UserContext(), service.ListFilter{
		Category: q.Category,
		Active:   q.Active,
		Search:   q.Q,
		Paging:   paging,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

func (ctl *JobRoleController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

func (ctl *JobRoleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req dto.UpdateJobRoleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req.ToUpdates())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "job role updated", m)
}

func (ctl *JobRoleController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	m, err := ctl.Svc.Deactivate(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "job role deactivated", m)
}

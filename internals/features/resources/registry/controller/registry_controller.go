// file: internals/features/resources/registry/controller/registry_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/resources/registry/dto"
	model "sdc_backend/internals/features/resources/registry/model"
	"sdc_backend/internals/features/resources/registry/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type RegistryController struct {
	Svc *service.Service
}

func NewRegistryController(db *gorm.DB) *RegistryController {
	return &RegistryController{Svc: service.New(db)}
}

func kindParam(c *fiber.Ctx) (model.ResourceKind, error) {
	kind, err := model.ParseResourceKind(strings.ToLower(c.Params("kind")))
	if err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return kind, nil
}

// POST /api/a/resources/:kind
func (ctl *RegistryController) Create(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ctx := c.UserContext()

	switch kind {
	case model.KindTrainer:
		var req dto.CreateTrainerRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		m := req.ToModel()
		if err := ctl.Svc.CreateTrainer(ctx, m); err != nil {
			return apperr.Respond(c, err)
		}
		return helper.JsonCreated(c, "trainer created", m)

	case model.KindManager:
		var req dto.CreateManagerRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		m := req.ToModel()
		if err := ctl.Svc.CreateManager(ctx, m); err != nil {
			return apperr.Respond(c, err)
		}
		return helper.JsonCreated(c, "manager created", m)

	default:
		var req dto.CreateInfrastructureRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		m := req.ToModel()
		if err := ctl.Svc.CreateInfrastructure(ctx, m); err != nil {
			return apperr.Respond(c, err)
		}
		return helper.JsonCreated(c, "infrastructure created", m)
	}
}

// PATCH /api/a/resources/:kind/:id
func (ctl *RegistryController) Update(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}

	var fields map[string]any
	switch kind {
	case model.KindTrainer:
		var req dto.UpdateTrainerRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		fields = req.ToUpdates()
	case model.KindManager:
		var req dto.UpdateManagerRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		fields = req.ToUpdates()
	default:
		var req dto.UpdateInfrastructureRequest
		if ok, err := helper.BindAndValidate(c, &req); !ok {
			return err
		}
		fields = req.ToUpdates()
	}

	out, err := ctl.Svc.Update(c.UserContext(), kind, id, fields)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "updated", out)
}

// GET /api/a/resources/:kind?status=&q=
func (ctl *RegistryController) List(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctl.Svc.List(c.UserContext(), kind, service.ListFilter{
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Search: c.Query("q"),
		Paging: paging,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/a/resources/:kind/:id
func (ctl *RegistryController) GetByID(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.Get(c.UserContext(), kind, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/a/resources/:kind/:id/assign
func (ctl *RegistryController) Assign(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req dto.AssignRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	out, err := ctl.Svc.Assign(c.UserContext(), kind, id, req.ConsumerID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "assigned", out)
}

// POST /api/a/resources/:kind/:id/release
func (ctl *RegistryController) Release(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.Release(c.UserContext(), kind, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "released", out)
}

// PATCH /api/a/resources/infrastructures/:id/maintenance
func (ctl *RegistryController) Maintenance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req dto.MaintenanceRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	out, err := ctl.Svc.SetMaintenance(c.UserContext(), id, *req.Maintenance)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "updated", out)
}

package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/workorders/allocation/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type AllocationController struct {
	DB *gorm.DB
}

func NewAllocationController(db *gorm.DB) *AllocationController {
	return &AllocationController{DB: db}
}

// GET /api/u/work-orders/:id/allocation-status
func (ctl *AllocationController) Status(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	snap, err := service.ComputeAllocationStatus(c.UserContext(), ctl.DB, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", snap)
}

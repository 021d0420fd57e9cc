package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/progress/burndown/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type BurndownController struct {
	Svc *service.Service
}

func NewBurndownController(db *gorm.DB) *BurndownController {
	return &BurndownController{Svc: service.New(db)}
}

// GET /api/u/burndown?work_order_id=
func (ctl *BurndownController) Get(c *fiber.Ctx) error {
	woID, err := helper.ParseOptionalUUIDQuery(c, "work_order_id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.Burndown(c.UserContext(), woID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
